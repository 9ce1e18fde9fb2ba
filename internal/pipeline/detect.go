package pipeline

import (
	"strings"

	"pumpquote/internal/util"
)

type DetectResult struct {
	IsPriceList bool
	Score       float64
	Reason      string
}

// Keywords are matched against diacritic-folded lowercase text, so one Greek
// spelling covers the accented variants.
var detectKeywords = []string{"τιμοκαταλογ", "τιμεσ", "αντλι", "price list", "pricelist", "prices"}

// DetectPriceListMessage scores whether a fetched mail carries a price list,
// from its subject and attachment names. Mails below the threshold are left
// untouched in the mailbox.
func DetectPriceListMessage(subject string, attachmentNames []string) DetectResult {
	normSubject := util.Normalize(subject)

	score := 0.0
	for _, kw := range detectKeywords {
		if strings.Contains(normSubject, kw) {
			score += 0.3
		}
	}

	for _, name := range attachmentNames {
		ln := strings.ToLower(name)
		if strings.HasSuffix(ln, ".xlsx") || strings.HasSuffix(ln, ".xls") {
			score += 0.4
			normName := util.Normalize(name)
			for _, kw := range detectKeywords {
				if strings.Contains(normName, kw) {
					score += 0.2
					break
				}
			}
			break
		}
	}

	if score > 1 {
		score = 1
	}

	isPriceList := score >= 0.4
	reason := "rules_negative"
	if isPriceList {
		reason = "rules_positive"
	}

	return DetectResult{IsPriceList: isPriceList, Score: score, Reason: reason}
}
