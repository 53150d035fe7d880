package scoring

import (
	"fmt"
	"strings"

	"seasalt-bot/internal/cards"
)

// Status classifies the outcome of a score computation. Malformed or
// non-scoring input is a normal result here, never an error.
type Status int

const (
	// StatusOK means at least one breakdown line was produced.
	StatusOK Status = iota
	// StatusNoCards means no "<count> <name>" pair was recognized.
	StatusNoCards
	// StatusNoScorable means cards were recognized but no rule applied.
	StatusNoScorable
)

// String returns a wire-friendly name for the status.
func (s Status) String() string {
	switch s {
	case StatusNoCards:
		return "no_cards"
	case StatusNoScorable:
		return "no_scorable"
	default:
		return "ok"
	}
}

// Line is one entry of a score breakdown. Order reflects evaluation
// order: substitutions, collectors, duos, combos, conversions,
// multipliers.
type Line struct {
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// ScoreResult pairs the total with its ordered breakdown. Message holds
// guidance text when Status is not OK.
type ScoreResult struct {
	Status  Status      `json:"status"`
	Total   int         `json:"total"`
	Lines   []Line      `json:"lines,omitempty"`
	Counts  cards.Count `json:"counts,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	noCardsMessage = "I couldn't find any valid cards in your message. " +
		"Please use the format: /score 2 crabs, 3 shells"
	noScorableMessage = "I couldn't find any scorable cards in your message. Try again! " +
		"If you were trying to score a mermaid card, do it under /color_bonus. " +
		"A Mermaid card's only role in scoring is to act as a key that unlocks your ability " +
		"to claim a color bonus. The points from the bonus come from your colored cards, " +
		"not from the Mermaid itself."
)

// Engine evaluates card counts against an immutable ruleset. It is
// pure and stateless between calls; safe for concurrent use.
type Engine struct {
	rules  cards.Ruleset
	parser *Parser
}

// NewEngine builds an engine over the given vocabulary and ruleset.
func NewEngine(vocab *cards.Vocabulary, rules cards.Ruleset) *Engine {
	return &Engine{rules: rules, parser: NewParser(vocab)}
}

// ComputeScore parses free-form card text and evaluates the base
// scoring rules.
func (e *Engine) ComputeScore(text string) ScoreResult {
	counts := e.parser.Parse(text)
	if counts.Empty() {
		return ScoreResult{Status: StatusNoCards, Counts: counts, Message: noCardsMessage}
	}

	total, lines := e.Score(counts)
	if len(lines) == 0 {
		return ScoreResult{Status: StatusNoScorable, Counts: counts, Message: noScorableMessage}
	}
	return ScoreResult{Status: StatusOK, Total: total, Lines: lines, Counts: counts}
}

// upgradeSlot tracks how many pair units of one duo/combo relationship
// remain available for a conversion upgrade.
type upgradeSlot struct {
	label string
	units int
}

// Score evaluates the rules against a count map, mutating it in place
// as substitutions and combos consume cards. The bonus key type is
// never scored here.
func (e *Engine) Score(counts cards.Count) (int, []Line) {
	var lines []Line
	total := 0

	// 1. Substitutions: assign each wildcard to the collector with the
	// largest strictly positive marginal gain; first max wins ties.
	for _, sub := range e.rules.Substitutions {
		for counts[sub.Type] > 0 {
			best := -1
			bestGain := 0
			for i, col := range e.rules.Collectors {
				c := counts[col.Type]
				gain := col.Points(c+1) - col.Points(c)
				if gain > bestGain {
					bestGain = gain
					best = i
				}
			}
			if best < 0 {
				break
			}
			target := e.rules.Collectors[best].Type
			counts[sub.Type]--
			counts.Add(target, 1)
			lines = append(lines, Line{
				Description: fmt.Sprintf("1 %s used as 1 %s", title(sub.Type), title(target)),
			})
		}
	}

	// 2. Collectors: step function of the clamped count.
	for _, col := range e.rules.Collectors {
		if counts[col.Type] == 0 {
			continue
		}
		clamped := col.Clamp(counts[col.Type])
		points := col.Table[clamped]
		total += points
		lines = append(lines, Line{
			Description: fmt.Sprintf("%d %s: %d pts", clamped, plural(col.Type), points),
			Points:      points,
		})
	}

	// 3. Duos: one point per full pair; odd remainders are reported,
	// not dropped.
	var slots []upgradeSlot
	for _, duo := range e.rules.Duos {
		count := counts[duo.Type]
		if count == 0 {
			continue
		}
		pairs := count / 2
		if pairs > 0 {
			total += pairs
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d pair(s) of %s: %d pts", pairs, plural(duo.Type), pairs),
				Points:      pairs,
			})
			slots = append(slots, upgradeSlot{
				label: fmt.Sprintf("%s pair", title(duo.Type)),
				units: pairs,
			})
		}
		if rem := count % 2; rem > 0 {
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d leftover %s(s): 0 pts", rem, title(duo.Type)),
			})
		}
	}

	// 4. Combos: min of both counts, consuming one of each per combo so
	// later rules see the reduced counts. Leftovers of duo-covered types
	// were already reported by the duo step.
	duoTypes := make(map[cards.CardType]bool, len(e.rules.Duos))
	for _, duo := range e.rules.Duos {
		duoTypes[duo.Type] = true
	}
	for _, combo := range e.rules.Combos {
		a, b := counts[combo.A], counts[combo.B]
		if a == 0 && b == 0 {
			continue
		}
		n := min(a, b)
		if n > 0 {
			total += n
			counts[combo.A] -= n
			counts[combo.B] -= n
			label := fmt.Sprintf("%s+%s combo", title(combo.A), title(combo.B))
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d %s(s): %d pts", n, label, n),
				Points:      n,
			})
			slots = append(slots, upgradeSlot{label: label, units: n})
		}
		if left := a - n; left > 0 && !duoTypes[combo.A] {
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d leftover %s(s): 0 pts", left, title(combo.A)),
			})
		}
		if left := b - n; left > 0 && !duoTypes[combo.B] {
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d leftover %s(s): 0 pts", left, title(combo.B)),
			})
		}
	}

	// 5. Conversions: upgrade pair units from 1 to 3 points, +2 net per
	// application, in the order duos and combos were scored.
	for _, conv := range e.rules.Conversions {
		units := counts[conv.Type]
		if units == 0 {
			continue
		}
		for i := range slots {
			if units == 0 {
				break
			}
			n := min(units, slots[i].units)
			if n == 0 {
				continue
			}
			gain := 2 * n
			total += gain
			units -= n
			slots[i].units -= n
			counts[conv.Type] -= n
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d %s upgrade(s) on %s: %d pts", n, title(conv.Type), slots[i].label, gain),
				Points:      gain,
			})
		}
		if units > 0 {
			lines = append(lines, Line{
				Description: fmt.Sprintf("%d leftover %s(s): 0 pts", units, title(conv.Type)),
			})
		}
	}

	// 6. Multipliers: read counts as they stand after consumption.
	for _, m := range e.rules.Multipliers {
		x, y := counts[m.Type], counts[m.Target]
		if x == 0 || y == 0 {
			continue
		}
		points := x * y * m.Scalar
		total += points
		lines = append(lines, Line{
			Description: fmt.Sprintf("%s + %s: %d pts", title(m.Type), plural(m.Target), points),
			Points:      points,
		})
	}

	return total, lines
}

// title capitalizes a card type for display.
func title(t cards.CardType) string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// plural is the display plural of a card type.
func plural(t cards.CardType) string {
	switch t {
	case cards.Fish:
		return "Fish"
	case cards.Octopus:
		return "Octopuses"
	case cards.Colony:
		return "Colonies"
	default:
		return title(t) + "s"
	}
}
