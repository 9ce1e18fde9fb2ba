package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)

	// NFD + strip combining marks + NFC. Folds Greek tonos/dialytika so that
	// "Μοντέλο" and "Μοντελο" normalize identically.
	diacriticFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize maps a header or query to its comparison form: trimmed, lowercased,
// diacritics removed, whitespace collapsed, final sigma unified.
func Normalize(input string) string {
	s, _, err := transform.String(diacriticFold, input)
	if err != nil {
		s = input
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ς", "σ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeCode reduces an ERP code to its comparison form: uppercase,
// diacritics removed, everything but letters, digits and -_/. dropped.
func NormalizeCode(input string) string {
	s, _, err := transform.String(diacriticFold, input)
	if err != nil {
		s = input
	}
	s = strings.ToUpper(s)
	out := strings.Builder{}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '/' || r == '.' {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func Tokenize(input string) []string {
	parts := strings.Split(Normalize(input), " ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if len([]rune(p)) >= 2 {
			out = append(out, p)
		}
	}
	return out
}

// LooksLikeCode reports whether the input resembles an ERP code rather than a
// model name: letters and digits mixed, no spaces.
func LooksLikeCode(input string) bool {
	s := strings.TrimSpace(input)
	if len(s) < 3 || strings.ContainsAny(s, " \t") {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// DiceCoefficient scores bigram overlap between two normalized strings in [0,1].
func DiceCoefficient(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	pairs := func(s string) []string {
		r := []rune(s)
		if len(r) < 2 {
			return nil
		}
		out := make([]string, 0, len(r)-1)
		for i := 0; i < len(r)-1; i++ {
			out = append(out, string(r[i:i+2]))
		}
		return out
	}

	aPairs := pairs(a)
	bPairs := pairs(b)
	if len(aPairs) == 0 || len(bPairs) == 0 {
		return 0
	}

	bCount := map[string]int{}
	for _, p := range bPairs {
		bCount[p]++
	}
	inter := 0
	for _, p := range aPairs {
		if bCount[p] > 0 {
			inter++
			bCount[p]--
		}
	}

	return float64(2*inter) / float64(len(aPairs)+len(bPairs))
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
