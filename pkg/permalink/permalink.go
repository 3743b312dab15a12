// Package permalink derives slugs and date-based article paths.
package permalink

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s\p{Zs}-]`)
	separators   = regexp.MustCompile(`[\s\p{Zs}_]+`)
	leadingDate  = regexp.MustCompile(`^\s*(\d{4})-(\d{2})-(\d{2})`)
	anyDate      = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

var monthNames = map[string]string{
	"01": "january", "02": "february", "03": "march", "04": "april",
	"05": "may", "06": "june", "07": "july", "08": "august",
	"09": "september", "10": "october", "11": "november", "12": "december",
}

// Slug derives a slug from an article title: characters other than letters,
// digits, underscores, whitespace and hyphens are dropped, whitespace and
// underscore runs become one hyphen, edge hyphens are trimmed, and the result
// is lower-cased. Non-Latin letters are kept.
func Slug(title string) string {
	s := nonSlugChars.ReplaceAllString(title, "")
	s = separators.ReplaceAllString(s, "-")
	return strings.ToLower(strings.Trim(s, "-"))
}

// FileSlug derives a slug from a file base name: lower-cased, with spaces and
// underscores turned into hyphens and edge hyphens trimmed. It returns "" when
// nothing is left.
func FileSlug(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	s := strings.ToLower(stem)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	return strings.Trim(s, "-")
}

// URLSafe reports whether s only uses characters that survive in a URL path
// unescaped.
func URLSafe(s string) bool {
	return slug.IsValid(s)
}

// DateSource records where a publication date came from.
type DateSource string

const (
	FromFrontmatter DateSource = "frontmatter"
	FromFilename    DateSource = "filename"
	FromClock       DateSource = "clock"
)

// PubDate is a publication date kept as the zero-padded strings it was read from.
type PubDate struct {
	Year   string
	Month  string
	Day    string
	Source DateSource
}

// String formats the date as YYYY-MM-DD.
func (d PubDate) String() string {
	return fmt.Sprintf("%s-%s-%s", d.Year, d.Month, d.Day)
}

// MonthDir is the "<MM>-<month name>" directory name.
func (d PubDate) MonthDir() string {
	return d.Month + "-" + MonthName(d.Month)
}

// MonthName returns the lower-case English name for a two-digit month, or
// "unknown".
func MonthName(month string) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return "unknown"
}

// ResolveDate picks the publication date from the frontmatter date value, then
// from a YYYY-MM-DD pattern in the file name, then from now (day 01).
func ResolveDate(frontmatterDate, fileName string, now time.Time) PubDate {
	if m := leadingDate.FindStringSubmatch(frontmatterDate); m != nil {
		return PubDate{Year: m[1], Month: m[2], Day: m[3], Source: FromFrontmatter}
	}
	stem := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	if m := anyDate.FindStringSubmatch(stem); m != nil {
		return PubDate{Year: m[1], Month: m[2], Day: m[3], Source: FromFilename}
	}
	return PubDate{
		Year:   fmt.Sprintf("%d", now.Year()),
		Month:  fmt.Sprintf("%02d", int(now.Month())),
		Day:    "01",
		Source: FromClock,
	}
}

// TargetPath returns <root>/<year>/<MM>-<month>/<slug>.md.
func TargetPath(root string, d PubDate, slug string) string {
	return filepath.Join(root, d.Year, d.MonthDir(), slug+".md")
}
