package cards

// CardType is the canonical identifier for a card in the scoring rules.
type CardType string

const (
	Crab       CardType = "crab"
	Boat       CardType = "boat"
	Fish       CardType = "fish"
	Swimmer    CardType = "swimmer"
	Shark      CardType = "shark"
	Lobster    CardType = "lobster"
	Shell      CardType = "shell"
	Octopus    CardType = "octopus"
	Penguin    CardType = "penguin"
	Sailor     CardType = "sailor"
	Lighthouse CardType = "lighthouse"
	Shoal      CardType = "shoal"
	Colony     CardType = "colony"
	Captain    CardType = "captain"
	Basket     CardType = "basket"
	Starfish   CardType = "starfish"
	Seahorse   CardType = "seahorse"
	Mermaid    CardType = "mermaid"
)

// Count maps canonical card types to how many of each a player holds.
// A fresh Count is built per request and mutated in place while scoring
// rules consume and reassign cards. Never shared across requests.
type Count map[CardType]int

// Add accumulates n cards of the given type.
func (c Count) Add(t CardType, n int) {
	c[t] += n
}

// Empty reports whether no cards were counted at all.
func (c Count) Empty() bool {
	return len(c) == 0
}

// Clone returns an independent copy of the count map.
func (c Count) Clone() Count {
	out := make(Count, len(c))
	for t, n := range c {
		out[t] = n
	}
	return out
}
