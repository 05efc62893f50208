package docblock

import (
	"bytes"
)

// Walker is a callback invoked for each block that may be rewritten. The
// walker may replace block.Code; any change is written back by [Walk].
type Walker func(block *Block) error

type change struct {
	block *Block
}

func (c *change) bounds() (int, int) {
	return c.block.CodeStart, c.block.CodeEnd
}

func (c *change) sizeIncrement() int {
	start, stop := c.bounds()

	return len(c.block.Code) - (stop - start)
}

// Walk scans source and calls walker for every block that is neither foreign
// nor disabled. If the walker modifies any block's Code, Walk returns true and
// the updated document. When no blocks are modified, it returns false and a
// nil slice.
func Walk(source []byte, opts Options, walker Walker) (bool, []byte, error) {
	var changes []*change

	for _, block := range Scan(source, opts) {
		if !block.Formattable() {
			continue
		}

		if err := walker(block); err != nil {
			return false, nil, err
		}

		if !bytes.Equal(source[block.CodeStart:block.CodeEnd], block.Code) {
			changes = append(changes, &change{block: block})
		}
	}

	if len(changes) == 0 {
		return false, nil, nil
	}

	return true, applyChanges(changes, source), nil
}

func applyChanges(changes []*change, source []byte) []byte {
	resSize := len(source)

	for _, change := range changes {
		resSize += change.sizeIncrement()
	}

	result := make([]byte, resSize)

	var srcIdx, resIdx int

	for _, change := range changes {
		start, stop := change.bounds()

		copy(result[resIdx:], source[srcIdx:start])
		resIdx += (start - srcIdx)

		copy(result[resIdx:], change.block.Code)
		resIdx += len(change.block.Code)

		srcIdx = stop
	}

	copy(result[resIdx:], source[srcIdx:])

	return result
}
