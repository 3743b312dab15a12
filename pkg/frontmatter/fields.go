package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const strTag = "!!str"

// Fields is an ordered metadata mapping. Existing keys keep their position and
// comments when updated; new keys are appended.
type Fields struct {
	node *yaml.Node
}

// NewFields returns an empty mapping.
func NewFields() *Fields {
	return &Fields{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// DecodeFields decodes a block strictly. An empty block is an empty mapping;
// anything other than a mapping is an error.
func DecodeFields(block string) (*Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, fmt.Errorf("decode frontmatter: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewFields(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("decode frontmatter: block is not a mapping (line %d)", root.Line)
	}
	seen := make(map[string]int, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if line, dup := seen[key.Value]; dup {
			return nil, fmt.Errorf("decode frontmatter: key %q on line %d already defined on line %d", key.Value, key.Line, line)
		}
		seen[key.Value] = key.Line
	}
	return &Fields{node: root}, nil
}

// FieldsFromPairs builds a mapping from leniently parsed lines. Quoted values
// stay strings; unquoted values keep their implicit YAML type.
func FieldsFromPairs(pairs []Pair) *Fields {
	f := NewFields()
	for _, p := range pairs {
		if p.Key == "" {
			continue
		}
		switch {
		case p.IsList:
			f.SetList(p.Key, p.List)
		case p.Quoted:
			f.SetString(p.Key, p.Value)
		default:
			f.Set(p.Key, p.Value)
		}
	}
	return f
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	return len(f.node.Content) / 2
}

// Keys returns the keys in document order.
func (f *Fields) Keys() []string {
	keys := make([]string, 0, f.Len())
	for i := 0; i+1 < len(f.node.Content); i += 2 {
		keys = append(keys, f.node.Content[i].Value)
	}
	return keys
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	return f.value(key) != nil
}

// Get returns the scalar value of key, or "" for missing and non-scalar values.
func (f *Fields) Get(key string) string {
	v := f.value(key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

// Set upserts a plain scalar whose type YAML infers from the text.
func (f *Fields) Set(key, value string) {
	f.put(key, &yaml.Node{Kind: yaml.ScalarNode, Value: value})
}

// SetString upserts a double-quoted string scalar.
func (f *Fields) SetString(key, value string) {
	f.put(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Style: yaml.DoubleQuotedStyle, Value: value})
}

// SetBool upserts a boolean scalar.
func (f *Fields) SetBool(key string, value bool) {
	f.put(key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", value)})
}

// SetList upserts a flow-style list of quoted strings.
func (f *Fields) SetList(key string, items []string) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, item := range items {
		seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Style: yaml.DoubleQuotedStyle, Value: item})
	}
	f.put(key, seq)
}

// Encode serialises the mapping with two-space indentation. An empty mapping
// encodes to "".
func (f *Fields) Encode() (string, error) {
	if f.Len() == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f.node); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	return buf.String(), nil
}

func (f *Fields) value(key string) *yaml.Node {
	for i := 0; i+1 < len(f.node.Content); i += 2 {
		if f.node.Content[i].Value == key {
			return f.node.Content[i+1]
		}
	}
	return nil
}

func (f *Fields) put(key string, value *yaml.Node) {
	if existing := f.value(key); existing != nil {
		value.LineComment = existing.LineComment
		*existing = *value
		return
	}
	f.node.Content = append(f.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key},
		value,
	)
}

// Compose renders a full document from fields and body.
func Compose(f *Fields, body string) (string, error) {
	block, err := f.Encode()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(len(block) + len(body) + 2*len(Delimiter) + 2)
	sb.WriteString(Delimiter)
	sb.WriteString("\n")
	sb.WriteString(block)
	sb.WriteString(Delimiter)
	sb.WriteString("\n")
	sb.WriteString(body)
	return sb.String(), nil
}
