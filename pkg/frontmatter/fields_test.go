package frontmatter

import (
	"errors"
	"strings"
	"testing"
)

func TestFields_UpsertKeepsOrder(t *testing.T) {
	f, err := DecodeFields("title: Hello\ndate: 2024-03-15\ndraft: false\n")
	if err != nil {
		t.Fatalf("DecodeFields() error = %v", err)
	}

	f.SetString("title", "Hello again")
	f.SetString("slug", "hello")
	f.SetList("keywords", []string{"a", "b"})
	f.SetBool("toc", true)

	got, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "title: \"Hello again\"\n" +
		"date: 2024-03-15\n" +
		"draft: false\n" +
		"slug: \"hello\"\n" +
		"keywords: [\"a\", \"b\"]\n" +
		"toc: true\n"
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestFieldsFromPairs_PreservesTypes(t *testing.T) {
	pairs := ParsePairs("title: \"true\"\ndraft: false\nnote: a: b\n")
	f := FieldsFromPairs(pairs)

	out, err := f.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if _, err := DecodeFields(out); err != nil {
		t.Fatalf("re-encoded block is not valid YAML: %v\n%s", err, out)
	}
	if !strings.Contains(out, `title: "true"`) {
		t.Errorf("quoted value lost its quoting:\n%s", out)
	}
	if !strings.Contains(out, "draft: false\n") {
		t.Errorf("unquoted bool changed:\n%s", out)
	}
}

func TestDecodeFields_Errors(t *testing.T) {
	tests := []struct {
		name  string
		block string
	}{
		{"sequence", "- a\n- b\n"},
		{"bad indentation", "title: a\n  b: c\n d: e\n"},
		{"duplicate key", "a: 1\na: 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeFields(tt.block); err == nil {
				t.Errorf("DecodeFields(%q) error = nil, want error", tt.block)
			}
		})
	}
}

func TestCompose_EmptyFields(t *testing.T) {
	got, err := Compose(NewFields(), "body\n")
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if got != "---\n---\nbody\n" {
		t.Errorf("Compose() = %q", got)
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
		ok      bool
	}{
		{"well formed", "---\ntitle: x\n---\nbody", nil, true},
		{"empty block", "---\n---\nbody", nil, true},
		{"missing", "body only", ErrMissing, false},
		{"unclosed", "---\ntitle: x\nbody", ErrUnclosed, false},
		{"bad yaml", "---\ntitle: a: b\n---\nbody", nil, false},
		{"duplicate key", "---\na: 1\na: 2\n---\n", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.text)
			if (err == nil) != tt.ok {
				t.Fatalf("Check() error = %v, want ok=%v", err, tt.ok)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Check() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
