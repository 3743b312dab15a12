// Package lang guesses whether article text is Chinese or English.
package lang

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

type Language string

const (
	Chinese Language = "zh"
	English Language = "en"
	Unknown Language = ""
)

// Detector wraps a lingua detector limited to the languages the blog is
// written in.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Chinese, lingua.English).
			Build(),
	}
}

// Detect returns Unknown for blank text or when lingua cannot decide.
func (d *Detector) Detect(text string) Language {
	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return Unknown
	}
	switch language {
	case lingua.Chinese:
		return Chinese
	case lingua.English:
		return English
	}
	return Unknown
}
