package util

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	reCurrency    = regexp.MustCompile(`(?i)(€|eur|ευρώ|ευρω)`)
	reThousandDot = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reThousandCom = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// ParseMoney coerces a spreadsheet cell to a monetary value. Currency markers
// and grouping separators are tolerated; a cell that does not parse yields nil,
// never zero.
func ParseMoney(cell string) *float64 {
	s := strings.ReplaceAll(cell, " ", " ")
	s = reCurrency.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(normalizeNumericToken(s), 64)
	if err != nil {
		return nil
	}
	return &parsed
}

// Round2 rounds to 2 decimals, half away from zero. Applied only at the point
// of output; intermediate figures stay unrounded.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func Round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := Round2(*v)
	return &r
}

func normalizeNumericToken(token string) string {
	compact := strings.ReplaceAll(token, " ", "")
	if reThousandDot.MatchString(compact) {
		return strings.ReplaceAll(compact, ".", "")
	}
	if reThousandCom.MatchString(compact) {
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") && strings.Contains(compact, ".") {
		// Whichever separator comes last is the decimal mark.
		if strings.LastIndex(compact, ",") > strings.LastIndex(compact, ".") {
			compact = strings.ReplaceAll(compact, ".", "")
			return strings.ReplaceAll(compact, ",", ".")
		}
		return strings.ReplaceAll(compact, ",", "")
	}
	if strings.Contains(compact, ",") {
		return strings.ReplaceAll(compact, ",", ".")
	}
	return compact
}
