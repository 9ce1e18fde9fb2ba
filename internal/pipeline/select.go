package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"pumpquote/internal"
	"pumpquote/internal/util"
)

// RowCandidate is a scored catalog row considered for a product query.
type RowCandidate struct {
	Row   internal.ProductRow
	Score float64
}

// AmbiguousRowError reports a query that matched several rows too closely to
// pick one.
type AmbiguousRowError struct {
	Query      string
	Candidates []RowCandidate
}

func (e *AmbiguousRowError) Error() string {
	labels := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		labels = append(labels, fmt.Sprintf("%s (%.2f)", c.Row.Label(), c.Score))
	}
	return fmt.Sprintf("ambiguous product %q, candidates: %s", e.Query, strings.Join(labels, "; "))
}

// SelectRow resolves a product query against the catalog: exact ERP code
// first, then exact model name, then fuzzy ranking over model labels. A fuzzy
// hit needs both the OK threshold and a clear gap to the runner-up.
func SelectRow(rows []internal.ProductRow, query string, okThreshold, gapThreshold float64) (internal.ProductRow, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return internal.ProductRow{}, fmt.Errorf("empty product query")
	}

	if util.LooksLikeCode(trimmed) {
		code := util.NormalizeCode(trimmed)
		byCode := make([]internal.ProductRow, 0, 1)
		for _, r := range rows {
			if r.ERPCode != "" && util.NormalizeCode(r.ERPCode) == code {
				byCode = append(byCode, r)
			}
		}
		if len(byCode) == 1 {
			return byCode[0], nil
		}
		if len(byCode) > 1 {
			return internal.ProductRow{}, &AmbiguousRowError{Query: trimmed, Candidates: toCandidates(byCode, 1)}
		}
	}

	norm := util.Normalize(trimmed)
	byModel := make([]internal.ProductRow, 0, 1)
	for _, r := range rows {
		if util.Normalize(r.Model) == norm {
			byModel = append(byModel, r)
		}
	}
	if len(byModel) == 1 {
		return byModel[0], nil
	}
	if len(byModel) > 1 {
		return internal.ProductRow{}, &AmbiguousRowError{Query: trimmed, Candidates: toCandidates(byModel, 1)}
	}

	candidates := rankRows(rows, norm)
	if len(candidates) == 0 || candidates[0].Score == 0 {
		return internal.ProductRow{}, fmt.Errorf("no product matches %q", trimmed)
	}

	top := candidates[0]
	gap := top.Score
	if len(candidates) > 1 {
		gap = top.Score - candidates[1].Score
	}
	if top.Score >= okThreshold && gap >= gapThreshold {
		return top.Row, nil
	}
	return internal.ProductRow{}, &AmbiguousRowError{Query: trimmed, Candidates: candidates}
}

func rankRows(rows []internal.ProductRow, query string) []RowCandidate {
	queryTokens := util.Tokenize(query)
	out := make([]RowCandidate, 0, len(rows))
	for _, r := range rows {
		candidate := util.Normalize(r.Model + " " + r.Power)
		score := scoreRow(query, candidate, queryTokens, util.Tokenize(candidate))
		if score > 0 {
			out = append(out, RowCandidate{Row: r, Score: score})
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}

func scoreRow(query, candidate string, queryTokens, candidateTokens []string) float64 {
	dice := util.DiceCoefficient(query, candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return dice
	}

	set := map[string]struct{}{}
	for _, t := range candidateTokens {
		set[t] = struct{}{}
	}
	overlap := 0
	for _, t := range queryTokens {
		if _, ok := set[t]; ok {
			overlap++
		}
	}
	tokenScore := float64(overlap) / float64(len(queryTokens))
	return 0.65*dice + 0.35*tokenScore
}

func toCandidates(rows []internal.ProductRow, score float64) []RowCandidate {
	limit := len(rows)
	if limit > 5 {
		limit = 5
	}
	out := make([]RowCandidate, 0, limit)
	for i := 0; i < limit; i++ {
		out = append(out, RowCandidate{Row: rows[i], Score: score})
	}
	return out
}
