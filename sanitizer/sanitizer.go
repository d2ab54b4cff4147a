// FILE: dobrawek/drlogger/sanitizer/sanitizer.go
// Package sanitizer rewrites strings before they are embedded in log lines,
// using bitwise filter flags to select runes and transform flags to rewrite them.
package sanitizer

import (
	"encoding/hex"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Filter flags for character matching
const (
	FilterNonPrintable uint64 = 1 << iota // Matches runes not classified as printable by strconv.IsPrint
	FilterControl                         // Matches control characters (unicode.IsControl)
	FilterWhitespace                      // Matches whitespace characters (unicode.IsSpace)
	FilterLineBreak                       // Matches '\n' and '\r'
)

// Transform flags for character transformation
const (
	TransformStrip     uint64 = 1 << iota // Removes the character
	TransformHexEncode                    // Encodes the character's UTF-8 bytes as "<XXYY>"
	TransformSpace                        // Replaces the character with a single space
)

// PolicyPreset defines pre-configured sanitization policies
type PolicyPreset string

const (
	PolicyRaw     PolicyPreset = "raw"     // No-op passthrough
	PolicyTxt     PolicyPreset = "txt"     // Hex-encodes everything that is not printable
	PolicyOneLine PolicyPreset = "oneline" // Folds line breaks into spaces, hex-encodes other control characters
)

// rule represents a single sanitization rule
type rule struct {
	filter    uint64
	transform uint64
}

// policyRules contains pre-configured rules for each policy
var policyRules = map[PolicyPreset][]rule{
	PolicyRaw: {},
	PolicyTxt: {{filter: FilterNonPrintable, transform: TransformHexEncode}},
	PolicyOneLine: {
		{filter: FilterLineBreak, transform: TransformSpace},
		{filter: FilterControl, transform: TransformHexEncode},
	},
}

// filterOrder fixes the order in which filter flags are checked
var filterOrder = []uint64{FilterNonPrintable, FilterControl, FilterWhitespace, FilterLineBreak}

// filterCheckers maps individual filter flags to their check functions
var filterCheckers = map[uint64]func(rune) bool{
	FilterNonPrintable: func(r rune) bool { return !strconv.IsPrint(r) },
	FilterControl:      unicode.IsControl,
	FilterWhitespace:   unicode.IsSpace,
	FilterLineBreak:    func(r rune) bool { return r == '\n' || r == '\r' },
}

// Sanitizer applies an ordered list of rules. A configured Sanitizer is safe
// for concurrent use by multiple goroutines.
type Sanitizer struct {
	rules []rule
}

// New creates a new Sanitizer instance
func New() *Sanitizer {
	return &Sanitizer{}
}

// Rule adds a custom rule to the sanitizer (appended, earliest rule applies first)
func (s *Sanitizer) Rule(filter uint64, transform uint64) *Sanitizer {
	s.rules = append(s.rules, rule{filter: filter, transform: transform})
	return s
}

// Policy applies a pre-configured policy to the sanitizer (appended)
func (s *Sanitizer) Policy(preset PolicyPreset) *Sanitizer {
	if rules, ok := policyRules[preset]; ok {
		s.rules = append(s.rules, rules...)
	}
	return s
}

// Sanitize applies all configured rules to the input string
func (s *Sanitizer) Sanitize(data string) string {
	if len(s.rules) == 0 || !s.needsWork(data) {
		return data
	}

	buf := make([]byte, 0, len(data)+16)
	for _, r := range data {
		matched := false
		// First matching rule wins
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				buf = applyTransform(buf, r, rl.transform)
				matched = true
				break
			}
		}
		if !matched {
			buf = utf8.AppendRune(buf, r)
		}
	}
	return string(buf)
}

// needsWork reports whether any rune of data matches a rule
func (s *Sanitizer) needsWork(data string) bool {
	for _, r := range data {
		for _, rl := range s.rules {
			if matchesFilter(r, rl.filter) {
				return true
			}
		}
	}
	return false
}

// matchesFilter checks if a rune matches any filter in the mask
func matchesFilter(r rune, filterMask uint64) bool {
	for _, flag := range filterOrder {
		if filterMask&flag != 0 && filterCheckers[flag](r) {
			return true
		}
	}
	return false
}

// applyTransform appends the transformed rune to buf
func applyTransform(buf []byte, r rune, transformMask uint64) []byte {
	switch {
	case transformMask&TransformStrip != 0:
		return buf

	case transformMask&TransformHexEncode != 0:
		var runeBytes [utf8.UTFMax]byte
		n := utf8.EncodeRune(runeBytes[:], r)
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, runeBytes[:n])
		return append(buf, '>')

	case transformMask&TransformSpace != 0:
		return append(buf, ' ')
	}
	return utf8.AppendRune(buf, r)
}
