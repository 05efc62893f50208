package docblock_test

import (
	"context"
	"strings"

	"github.com/ezerfernandes/blackdocs/internal/black"
)

// stubFormatter behaves like black on a fixed table of sources: trailing
// newlines are normalized, known sources are rewritten, everything else is
// considered already formatted.
type stubFormatter struct {
	calls []string
}

var formatted = map[string]string{
	"f(1,2,3)\n":                                      "f(1, 2, 3)\n",
	"f( )\n":                                          "f()\n",
	"if True:\n  f(1,2,3)\n":                          "if True:\n    f(1, 2, 3)\n",
	"print( 'Hello World' )\n":                        "print(\"Hello World\")\n",
	"def hi():\n    f(1,2,3)\n":                       "def hi():\n    f(1, 2, 3)\n",
	"def foo():\n    bar(1,2,3)\n":                    "def foo():\n    bar(1, 2, 3)\n",
	"import parrot  \nmock = SomeMock( )\n":           "import parrot\n\nmock = SomeMock()\n",
	"mock.stop( )\n":                                  "mock.stop()\n",
	"parrot.voom( 3000 )\n":                           "parrot.voom(3000)\n",
	"if True:\n  pass\n":                              "if True:\n    pass\n",
	"if True:\n    def f(): pass\n":                   "if True:\n\n    def f():\n        pass\n",
	"l = [\n\n    1,\n]\n":                            "l = [\n    1,\n]\n",
	`d = {"a": 1,"b": 2,"c": 3,}` + "\n":              explodedDict,
	"d = {\n  \"a\": 1,\n  \"b\": 2,\n  \"c\": 3,}\n": explodedDict,
}

const explodedDict = "d = {\n    \"a\": 1,\n    \"b\": 2,\n    \"c\": 3,\n}\n"

var unparsable = map[string]string{
	"f(\n":    "Cannot parse: 2:0: EOF in multi-line statement",
	"x = (\n": "Cannot parse: 2:0: EOF in multi-line statement",
}

func (s *stubFormatter) Format(_ context.Context, src string, _ black.Mode) (string, error) {
	s.calls = append(s.calls, src)

	src = strings.TrimRight(src, "\n")
	if len(strings.TrimSpace(src)) == 0 {
		return "", nil
	}

	src += "\n"

	if msg, ok := unparsable[src]; ok {
		return "", &black.SyntaxError{Msg: msg}
	}

	if out, ok := formatted[src]; ok {
		return out, nil
	}

	return src, nil
}
