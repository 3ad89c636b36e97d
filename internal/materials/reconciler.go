package materials

import (
	"sort"
	"strings"

	"github.com/octobees/recycling-finder/internal/entity"
)

// Generic bucket entries used when a mention maps to a category but not to a
// specific vocabulary description.
const (
	bucketMetals  = "Mixed Metals"
	bucketPlastic = "Mixed Plastics"
	bucketPaper   = "Mixed Paper (general)"
)

// Reconciler matches free-text material mentions against the canonical
// vocabulary. It is a pure transform: construct once, share freely.
type Reconciler struct {
	vocab        []entity.Material
	byLowerDesc  map[string]entity.Material
	haveCategory map[string]bool
}

// NewReconciler indexes the vocabulary for matching.
func NewReconciler(vocab []entity.Material) *Reconciler {
	r := &Reconciler{
		vocab:        vocab,
		byLowerDesc:  make(map[string]entity.Material, len(vocab)),
		haveCategory: make(map[string]bool, len(vocab)),
	}
	for _, m := range vocab {
		r.byLowerDesc[strings.ToLower(m.Description)] = m
		r.haveCategory[m.Category] = true
	}
	return r
}

// Reconcile merges profile-derived mentions (uncategorized free text) and
// website-derived mentions (already grouped by category by the scanner) into
// a deduplicated set of canonical matches. Mentions that match nothing are
// dropped silently; that is the expected outcome for most scraped noise.
// Output order is category then description, so repeated runs on the same
// input are byte-identical.
func (r *Reconciler) Reconcile(mentions []string, websiteMentions map[string][]string) []entity.MaterialMatch {
	seen := make(map[entity.MaterialMatch]struct{})

	for _, mention := range mentions {
		category, ok := classify(mention)
		if !ok {
			continue
		}
		if match, ok := r.bestMatch(mention, category); ok {
			seen[match] = struct{}{}
		}
	}

	for category, grouped := range websiteMentions {
		for _, mention := range grouped {
			if match, ok := r.bestMatch(mention, category); ok {
				seen[match] = struct{}{}
			}
		}
	}

	matches := make([]entity.MaterialMatch, 0, len(seen))
	for match := range seen {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Category != matches[j].Category {
			return matches[i].Category < matches[j].Category
		}
		return matches[i].Description < matches[j].Description
	})
	return matches
}

// bestMatch tries an exact description match first, then the generic bucket
// for the metal/plastic/paper categories. The metal bucket fires only for
// the literal tokens "iron" and "steel"; broadening that trigger would pull
// in every scrap-yard adjective, so it stays narrow.
func (r *Reconciler) bestMatch(mention, category string) (entity.MaterialMatch, bool) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return entity.MaterialMatch{}, false
	}
	lower := strings.ToLower(mention)

	if m, ok := r.byLowerDesc[lower]; ok {
		return entity.MaterialMatch{Category: m.Category, Description: m.Description}, true
	}

	if !r.haveCategory[category] {
		return entity.MaterialMatch{}, false
	}
	switch category {
	case "metal":
		if lower == "iron" || lower == "steel" {
			return entity.MaterialMatch{Category: "metal", Description: bucketMetals}, true
		}
	case "plastic":
		return entity.MaterialMatch{Category: "plastic", Description: bucketPlastic}, true
	case "paper":
		return entity.MaterialMatch{Category: "paper", Description: bucketPaper}, true
	}

	return entity.MaterialMatch{}, false
}

// classify assigns a category to an uncategorized mention via the keyword
// table; first matching category in table order wins.
func classify(mention string) (string, bool) {
	lower := strings.ToLower(mention)
	for _, entry := range keywordTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) {
				return entry.Category, true
			}
		}
	}
	return "", false
}
