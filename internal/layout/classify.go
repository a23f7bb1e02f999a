package layout

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultCitationPattern matches bracketed citation keys such as [AB12].
const DefaultCitationPattern = `\[[A-Z]+[0-9]{2,}\]`

// numberingPattern matches "1 ", "2.3.1 " or a single capital letter followed by whitespace.
var numberingPattern = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\s|[A-Z]\s)`)

// Heuristics holds every tunable of the heading classifier.
type Heuristics struct {
	// Rejection filters.
	RejectSubstrings    []string
	HeaderMarginPercent float64
	FooterMarginPercent float64
	CitationPattern     string
	MaxWordCount        int
	MinWordCount        int

	// Positive signals; any enabled signal that matches accepts the line.
	SizeMultiplier float64
	UseSize        bool
	UseBold        bool
	UseNumbering   bool
	UseAllCaps     bool

	// Secondary layout requirements, applied after a positive signal.
	RequireDifferentColor bool
	RequireCentered       bool
	CenterTolerance       float64
}

// DefaultHeuristics returns the stock tuning.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		RejectSubstrings:    []string{"arXiv"},
		HeaderMarginPercent: 10,
		FooterMarginPercent: 10,
		CitationPattern:     DefaultCitationPattern,
		MaxWordCount:        20,
		MinWordCount:        1,
		SizeMultiplier:      1.15,
		UseSize:             true,
		UseBold:             true,
		UseNumbering:        true,
		UseAllCaps:          true,
		CenterTolerance:     20,
	}
}

// Validate checks that the thresholds are usable.
func (h Heuristics) Validate() error {
	var errs []error
	if h.HeaderMarginPercent < 0 || h.HeaderMarginPercent >= 100 {
		errs = append(errs, fmt.Errorf("header margin %.2f%% out of range", h.HeaderMarginPercent))
	}
	if h.FooterMarginPercent < 0 || h.FooterMarginPercent >= 100 {
		errs = append(errs, fmt.Errorf("footer margin %.2f%% out of range", h.FooterMarginPercent))
	}
	if h.MaxWordCount < h.MinWordCount {
		errs = append(errs, fmt.Errorf("max word count %d below min word count %d", h.MaxWordCount, h.MinWordCount))
	}
	if h.SizeMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("size multiplier must be positive, got %v", h.SizeMultiplier))
	}
	if h.CenterTolerance < 0 {
		errs = append(errs, fmt.Errorf("center tolerance must not be negative, got %v", h.CenterTolerance))
	}
	return errors.Join(errs...)
}

// Classifier decides, line by line, whether text is a heading. It is immutable
// once built and safe for concurrent use.
type Classifier struct {
	h        Heuristics
	citation *regexp.Regexp
}

// NewClassifier validates h and compiles its citation pattern.
func NewClassifier(h Heuristics) (*Classifier, error) {
	if err := h.Validate(); err != nil {
		return nil, fmt.Errorf("invalid heuristics: %w", err)
	}
	c := &Classifier{h: h}
	c.h.RejectSubstrings = slices.Clone(h.RejectSubstrings)
	if h.CitationPattern != "" {
		re, err := regexp.Compile(h.CitationPattern)
		if err != nil {
			return nil, fmt.Errorf("compile citation pattern: %w", err)
		}
		c.citation = re
	}
	return c, nil
}

// Classify returns the heading candidates among lines, in input order.
func (c *Classifier) Classify(lines []Line, style StyleProfile) []Line {
	var headings []Line
	for _, l := range lines {
		if c.IsHeading(l, style) {
			headings = append(headings, l)
		}
	}
	return headings
}

// IsHeading applies the rejection filters first; a rejected line is never a
// heading however large or bold it is.
func (c *Classifier) IsHeading(l Line, style StyleProfile) bool {
	if c.rejected(l) {
		return false
	}
	if !c.signalled(l, style) {
		return false
	}
	return c.laidOut(l, style)
}

func (c *Classifier) rejected(l Line) bool {
	text := l.Text
	for _, s := range c.h.RejectSubstrings {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}

	header := l.PageHeight * c.h.HeaderMarginPercent / 100
	footer := l.PageHeight * c.h.FooterMarginPercent / 100
	if l.BBox.Y0 < header || l.BBox.Y1 > l.PageHeight-footer {
		return true
	}

	if c.citation != nil && c.citation.MatchString(text) {
		return true
	}

	words := len(strings.Fields(text))
	if words > c.h.MaxWordCount {
		return true
	}
	// Fragments that start with a digit, such as a lone "7", are exempt.
	if words < c.h.MinWordCount && !startsWithDigit(text) {
		return true
	}
	return false
}

func (c *Classifier) signalled(l Line, style StyleProfile) bool {
	if c.h.UseSize && float64(l.Size) > float64(style.BodySize)*c.h.SizeMultiplier {
		return true
	}
	if c.h.UseBold && IsBold(l.Flags) {
		return true
	}
	if c.h.UseNumbering && numberingPattern.MatchString(l.Text) {
		return true
	}
	if c.h.UseAllCaps && isUpper(l.Text) {
		return true
	}
	return false
}

func (c *Classifier) laidOut(l Line, style StyleProfile) bool {
	if c.h.RequireDifferentColor && l.Color == style.BodyColor {
		return false
	}
	if c.h.RequireCentered {
		center := (l.BBox.X0 + l.BBox.X1) / 2
		if math.Abs(center-l.PageWidth/2) > c.h.CenterTolerance {
			return false
		}
	}
	return true
}

func startsWithDigit(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsDigit(r)
}

// isUpper reports whether s has at least one cased letter and no lowercase or
// titlecase ones.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
