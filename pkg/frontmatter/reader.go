// Package frontmatter reads and rewrites the "---" delimited metadata block at
// the top of a Markdown document.
//
// Reading is lenient: a missing or unclosed block yields empty metadata and the
// whole text as body. Rewriting goes through Fields, an ordered yaml.Node
// mapping, so re-serialised blocks are always valid YAML.
package frontmatter

import (
	"strings"

	"github.com/dtnitsch/blogkit/models"
)

// Delimiter opens and closes the metadata block. Both must be whole lines.
const Delimiter = "---"

// Pair is one key/value line of a metadata block.
type Pair struct {
	Key    string
	Value  string
	List   []string
	IsList bool
	Quoted bool // value was wrapped in matching quotes
}

// Split separates the metadata block from the body. ok is false when the text
// does not start with a delimiter line or the block is never closed; in that
// case block is empty and body is the original text.
func Split(text string) (block, body string, ok bool) {
	first, rest, found := strings.Cut(text, "\n")
	if !found || strings.TrimSpace(first) != Delimiter {
		return "", text, false
	}

	offset := 0
	for {
		line, _, more := strings.Cut(rest[offset:], "\n")
		if strings.TrimSpace(line) == Delimiter {
			block = rest[:offset]
			if more {
				body = rest[offset+len(line)+1:]
			}
			return block, body, true
		}
		if !more {
			return "", text, false
		}
		offset += len(line) + 1
	}
}

// Read splits text and parses its metadata block.
func Read(text string) (models.Metadata, string) {
	block, body, ok := Split(text)
	if !ok {
		return models.Metadata{}, text
	}
	return ParseBlock(block), body
}

// ParseBlock parses a metadata block into a flat mapping. Later duplicate keys
// overwrite earlier ones.
func ParseBlock(block string) models.Metadata {
	meta := models.Metadata{}
	for _, p := range ParsePairs(block) {
		if p.IsList {
			meta[p.Key] = p.List
		} else {
			meta[p.Key] = p.Value
		}
	}
	return meta
}

// ParsePairs returns the key/value lines of a block in order. Comment lines and
// lines without a ':' separator are skipped.
func ParsePairs(block string) []Pair {
	var pairs []Pair
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		p := Pair{Key: strings.TrimSpace(key)}
		p.Value, p.Quoted = unquote(strings.TrimSpace(value))
		if strings.HasPrefix(p.Value, "[") && strings.HasSuffix(p.Value, "]") {
			p.IsList = true
			p.List = splitList(p.Value[1 : len(p.Value)-1])
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func unquote(value string) (string, bool) {
	if len(value) < 2 {
		return value, false
	}
	if (value[0] == '"' && value[len(value)-1] == '"') || (value[0] == '\'' && value[len(value)-1] == '\'') {
		return value[1 : len(value)-1], true
	}
	return value, false
}

func splitList(inner string) []string {
	items := []string{}
	for _, item := range strings.Split(inner, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, strings.Trim(item, `"'`))
	}
	return items
}
