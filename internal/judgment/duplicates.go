package judgment

import (
	"fmt"
	"strings"
	"unicode"

	"itinerary-remediation-service/internal/domain"
	"itinerary-remediation-service/internal/ports"
)

var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"visit": true, "tour": true, "explore": true, "walk": true, "stroll": true,
	"lunch": true, "dinner": true, "breakfast": true, "near": true,
}

const duplicateSystem = `You decide whether two itinerary entries refer to the same physical place.
Answer with JSON only: {"results":[{"pair":<int>,"samePlace":<bool>,"confidence":<0..1>}]}.
Different branches of a chain, or different places sharing a generic name, are not the same place.`

// significantWords returns the lower-cased words of name that carry identity.
func significantWords(name string) map[string]bool {
	out := make(map[string]bool)
	for _, w := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len([]rune(w)) >= 3 && !stopwords[w] {
			out[w] = true
		}
	}
	return out
}

// similarNames is the cheap pre-filter: one name contains the other, or they
// share at least two significant words.
func similarNames(a, b string) bool {
	na, nb := domain.NormalizeName(a), domain.NormalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	wa, wb := significantWords(a), significantWords(b)
	shared := 0
	for w := range wa {
		if wb[w] {
			shared++
		}
	}
	return shared >= 2
}

type duplicateVerdict struct {
	Pair       *int     `json:"pair"`
	SamePlace  *bool    `json:"samePlace"`
	Confidence *float64 `json:"confidence"`
}

type duplicatePair struct {
	first, later target
}

func buildDuplicateRequest(it *domain.Itinerary, cfg Config) *request {
	targets := effectiveTargets(it)

	var pairs []duplicatePair
	for i := 0; i < len(targets) && len(pairs) < cfg.MaxDuplicatePairs; i++ {
		for j := i + 1; j < len(targets) && len(pairs) < cfg.MaxDuplicatePairs; j++ {
			if targets[i].ref.DayIndex == targets[j].ref.DayIndex {
				continue
			}
			if similarNames(targets[i].activity.Name, targets[j].activity.Name) {
				pairs = append(pairs, duplicatePair{first: targets[i], later: targets[j]})
			}
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	items := make([]map[string]any, 0, len(pairs))
	for i, p := range pairs {
		items = append(items, map[string]any{"pair": i, "a": p.first.describe(), "b": p.later.describe()})
	}

	return &request{
		completion: ports.CompletionRequest{
			System:    duplicateSystem,
			Prompt:    "PAIRS_JSON:\n" + mustJSON(items),
			JSON:      true,
			MaxTokens: 40 * len(pairs),
		},
		parse: func(raw string) []edit {
			var edits []edit
			for _, r := range decodeResults[duplicateVerdict](raw) {
				if r.Pair == nil || r.SamePlace == nil || r.Confidence == nil {
					continue
				}
				if *r.Pair < 0 || *r.Pair >= len(pairs) || !*r.SamePlace || *r.Confidence < cfg.MinDuplicateConfidence {
					continue
				}
				p := pairs[*r.Pair]
				edits = append(edits, edit{
					ref:    p.later.ref,
					remove: true,
					change: domain.ChangeRecord{
						Type:   domain.ChangeRemovedSemanticDup,
						Day:    p.later.dayNumber,
						SlotID: p.later.slotID,
						Reason: fmt.Sprintf("%q is the same place as %q on day %d (confidence %.2f)",
							p.later.activity.Name, p.first.activity.Name, p.first.dayNumber, *r.Confidence),
					},
				})
			}
			return edits
		},
	}
}
