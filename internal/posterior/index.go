package posterior

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownParameter marks a name/group-index combination the sampler never
// reported. Always fatal: it means the model metadata and the consumer
// disagree about the fitted parameterization.
var ErrUnknownParameter = errors.New("unknown posterior parameter")

// Index maps parameter names (plus group indices for array-valued parameters)
// to columns of the sample array. Built once from the sampler's name table,
// read-only afterwards.
type Index struct {
	offsets map[string]int
}

// NewIndex builds the index from the sampler's ordered parameter-name table.
// Array-valued entries use the sampler's bracket notation, e.g. "beta1[0,2]".
func NewIndex(names []string) (*Index, error) {
	offsets := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("posterior: blank parameter name at column %d", i)
		}
		if _, dup := offsets[name]; dup {
			return nil, fmt.Errorf("posterior: duplicate parameter name %q", name)
		}
		offsets[name] = i
	}
	return &Index{offsets: offsets}, nil
}

// Len returns the number of registered parameter columns.
func (ix *Index) Len() int { return len(ix.offsets) }

// Offset resolves a parameter name and optional group indices to a sample
// column. Scalar parameters take no group indices; array-valued parameters
// take one index per grouping level.
func (ix *Index) Offset(name string, group ...int) (int, error) {
	key := name
	if len(group) > 0 {
		var b strings.Builder
		b.WriteString(name)
		b.WriteByte('[')
		for i, g := range group {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(g))
		}
		b.WriteByte(']')
		key = b.String()
	}
	off, ok := ix.offsets[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownParameter, key)
	}
	return off, nil
}
