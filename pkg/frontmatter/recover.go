package frontmatter

import (
	"regexp"
	"strings"
)

var keyLine = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*[ \t]*:([ \t]|$)`)

// Recovery is the result of rebuilding a document's metadata block.
type Recovery struct {
	Fields *Fields
	Body   string
	// Problem is what Check reported for the original text; nil when the
	// block was already well formed.
	Problem error
	// Dropped counts block lines that could not be carried over.
	Dropped int
}

// Recover returns the metadata and body of text, rebuilding the block when it
// is missing, unclosed or not valid YAML. Re-encoding the returned Fields
// always yields a block that passes Check.
func Recover(text string) Recovery {
	problem := Check(text)
	switch problem {
	case ErrMissing:
		return Recovery{Fields: NewFields(), Body: text, Problem: problem}
	case ErrUnclosed:
		block, body := leadingBlock(text)
		r := fromBlock(block)
		r.Body = body
		r.Problem = problem
		return r
	}

	block, body, _ := Split(text)
	if problem == nil {
		if f, err := DecodeFields(block); err == nil {
			return Recovery{Fields: f, Body: body}
		}
	}
	r := lenient(block)
	r.Body = body
	r.Problem = problem
	return r
}

// leadingBlock takes the metadata-looking lines that follow an opening
// delimiter which is never closed. A blank line ends the run unless more keys
// follow it; trailing comments and blanks are left to the body.
func leadingBlock(text string) (block, body string) {
	_, rest, _ := strings.Cut(text, "\n")
	lines := strings.Split(rest, "\n")

	end := 0
	for end < len(lines) {
		line := lines[end]
		if strings.TrimSpace(line) == "" {
			if !keysFollow(lines[end+1:]) {
				break
			}
			end++
			continue
		}
		if !metadataLine(line) {
			break
		}
		end++
	}
	for end > 0 && (strings.TrimSpace(lines[end-1]) == "" || strings.HasPrefix(lines[end-1], "#")) {
		end--
	}

	block = strings.Join(lines[:end], "\n")
	body = strings.TrimLeft(strings.Join(lines[end:], "\n"), "\n")
	return block, body
}

// keysFollow reports whether the first line that is neither blank nor a
// comment looks like metadata.
func keysFollow(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return metadataLine(line)
	}
	return false
}

func metadataLine(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	return strings.HasPrefix(line, "#") || keyLine.MatchString(line)
}

func fromBlock(block string) Recovery {
	if f, err := DecodeFields(block); err == nil {
		return Recovery{Fields: f}
	}
	return lenient(block)
}

func lenient(block string) Recovery {
	dropped := 0
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, ":") {
			dropped++
		}
	}
	return Recovery{Fields: FieldsFromPairs(ParsePairs(block)), Dropped: dropped}
}
