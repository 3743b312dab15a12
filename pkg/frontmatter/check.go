package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissing  = errors.New("no frontmatter block")
	ErrUnclosed = errors.New("frontmatter block is not closed")
)

var yamlFormat = adrg.NewFormat(Delimiter, Delimiter, yaml.Unmarshal)

// Check reports why text does not carry a well-formed block: the first line is
// a delimiter, a later line closes the block, and the block decodes as a YAML
// mapping with unique keys. It returns nil for a well-formed document.
func Check(text string) error {
	if _, _, ok := Split(text); !ok {
		first, _, _ := strings.Cut(text, "\n")
		if strings.TrimSpace(first) == Delimiter {
			return ErrUnclosed
		}
		return ErrMissing
	}

	var meta map[string]any
	if _, err := adrg.MustParse(strings.NewReader(text), &meta, yamlFormat); err != nil {
		return fmt.Errorf("malformed frontmatter: %w", err)
	}
	return nil
}

// WellFormed reports whether Check passes.
func WellFormed(text string) bool {
	return Check(text) == nil
}
