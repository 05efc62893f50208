package docblock

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/shlex"
)

// Meta holds key-value metadata found after a block's language tag, such as
// title='example.py' in a Markdown info string or linenos in minted options.
type Meta map[string]interface{}

// Get returns the metadata value for the given key as a string.
// It returns an empty string if the key is missing or the Meta is nil.
func (m Meta) Get(name string) string {
	if m == nil {
		return ""
	}

	value, has := m[name]
	if !has {
		return ""
	}

	if s, ok := value.(string); ok {
		return s
	}

	return fmt.Sprint(value)
}

// String renders the metadata as sorted key=value words.
func (m Meta) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	words := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := m.Get(k); len(v) != 0 {
			words = append(words, k+"="+v)
		} else {
			words = append(words, k)
		}
	}

	return strings.Join(words, " ")
}

var (
	reJSON     = regexp.MustCompile(`^\s*{\s*["}]`)
	reBrackets = regexp.MustCompile(`^\s*{(.*)}$`)
)

// parseMeta decodes Markdown info text. Text that is neither JSON nor
// shell-style words yields nil metadata; the info string is kept verbatim
// regardless, so a malformed one never prevents formatting.
func parseMeta(input string) Meta {
	input = strings.TrimSpace(input)
	if len(input) == 0 {
		return nil
	}

	if reJSON.MatchString(input) {
		var meta Meta

		if err := json.Unmarshal([]byte(input), &meta); err != nil {
			return nil
		}

		return meta
	}

	if subs := reBrackets.FindStringSubmatch(input); subs != nil {
		input = subs[1]
	}

	words, err := shlex.Split(input)
	if err != nil {
		return nil
	}

	return wordsMeta(words)
}

// parseOptions decodes a LaTeX optional argument such as
// "[linenos,fontsize=\small]".
func parseOptions(input string) Meta {
	input = strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(input), "["), "]")
	if len(input) == 0 {
		return nil
	}

	var words []string

	for _, word := range strings.Split(input, ",") {
		if word = strings.TrimSpace(word); len(word) != 0 {
			words = append(words, word)
		}
	}

	return wordsMeta(words)
}

func wordsMeta(words []string) Meta {
	dict := make(Meta)

	for _, word := range words {
		if idx := strings.IndexRune(word, '='); idx >= 0 {
			dict[word[:idx]] = word[idx+1:]
		} else {
			dict[word] = ""
		}
	}

	if len(dict) == 0 {
		return nil
	}

	return dict
}
