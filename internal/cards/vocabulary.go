package cards

import (
	"sort"
	"strings"
)

// Vocabulary maps user-facing card names (plurals, multi-word synonyms)
// to canonical card types. Constructed once at startup, read-only after.
type Vocabulary struct {
	forms  map[string]CardType
	sorted []string
}

// NewVocabulary builds a vocabulary from surface form -> canonical type
// entries. Surface forms are lowercased.
func NewVocabulary(entries map[string]CardType) *Vocabulary {
	forms := make(map[string]CardType, len(entries))
	for form, t := range entries {
		forms[strings.ToLower(form)] = t
	}

	// Longer forms first so "shoal of fish" is never shadowed by "fish".
	sorted := make([]string, 0, len(forms))
	for form := range forms {
		sorted = append(sorted, form)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	return &Vocabulary{forms: forms, sorted: sorted}
}

// Canonical resolves a surface form to its canonical card type.
func (v *Vocabulary) Canonical(form string) (CardType, bool) {
	t, ok := v.forms[strings.ToLower(strings.TrimSpace(form))]
	return t, ok
}

// Forms returns all surface forms ordered longest first, for building
// longest-match patterns.
func (v *Vocabulary) Forms() []string {
	out := make([]string, len(v.sorted))
	copy(out, v.sorted)
	return out
}

// Types returns the set of canonical types the vocabulary can produce.
func (v *Vocabulary) Types() map[CardType]bool {
	types := make(map[CardType]bool)
	for _, t := range v.forms {
		types[t] = true
	}
	return types
}

// DefaultVocabulary covers the base game plus the expansion cards.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(map[string]CardType{
		"crab": Crab, "crabs": Crab,
		"boat": Boat, "boats": Boat,
		"fish":    Fish,
		"swimmer": Swimmer, "swimmers": Swimmer,
		"shark": Shark, "sharks": Shark,
		"lobster": Lobster, "lobsters": Lobster,
		"shell": Shell, "shells": Shell,
		"octopus": Octopus, "octopuses": Octopus,
		"penguin": Penguin, "penguins": Penguin,
		"sailor": Sailor, "sailors": Sailor,
		"lighthouse": Lighthouse,
		"shoal":      Shoal, "shoal of fish": Shoal,
		"colony": Colony, "penguin colony": Colony,
		"captain": Captain,
		"basket":  Basket, "baskets": Basket,
		"starfish": Starfish,
		"seahorse": Seahorse, "seahorses": Seahorse,
		"mermaid": Mermaid, "mermaids": Mermaid,
	})
}
