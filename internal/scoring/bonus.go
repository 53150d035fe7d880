package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RoundOutcome captures how the round ended, for bonus distribution.
type RoundOutcome struct {
	// CalledLastChance is true when the round ended by a Last Chance
	// call rather than a Stop.
	CalledLastChance bool
	// IsCaller is true when the requesting player made the call.
	IsCaller bool
	// CallerSucceeded is true when the call was validated as correct.
	CallerSucceeded bool
}

// BonusResult pairs the color bonus value with its explanation.
type BonusResult struct {
	Points      int    `json:"points"`
	Explanation string `json:"explanation"`
}

const bonusUsageMessage = "Please list your cards by color count.\n" +
	"Example: /color_bonus 4 blue, 3 pink, 1 mermaid"

// Color pairs are any "<count> <word>"; the vocabulary here is disjoint
// from base scoring.
var bonusPairPattern = regexp.MustCompile(`(\d+)\s+([a-zA-Z]+)`)

// ComputeColorBonus re-parses the input for "<count> <color>" pairs
// plus the bonus-key count, then applies the unlocking and outcome
// distribution rules. Malformed input yields zero with usage guidance,
// never an error.
func (e *Engine) ComputeColorBonus(text string, outcome RoundOutcome) BonusResult {
	if !outcome.CalledLastChance {
		return BonusResult{
			Explanation: "No color bonus is scored when the round ends with Stop.",
		}
	}

	matches := bonusPairPattern.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return BonusResult{Explanation: bonusUsageMessage}
	}

	key := string(e.rules.BonusKey)
	keyCount := 0
	var colorCounts []int
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if strings.Contains(m[2], key) {
			keyCount = n
		} else {
			colorCounts = append(colorCounts, n)
		}
	}

	points := 0
	var explanation string
	switch {
	case keyCount >= 1 && len(colorCounts) == 0:
		explanation = fmt.Sprintf(
			"You have %d %s(s) but listed no color groups, so there is nothing to unlock.\nTotal Color Bonus: 0",
			keyCount, title(e.rules.BonusKey))
	case keyCount >= 1:
		// Each key unlocks one more color group, largest first.
		sort.Sort(sort.Reverse(sort.IntSlice(colorCounts)))
		groups := min(keyCount, len(colorCounts))
		selected := colorCounts[:groups]
		parts := make([]string, len(selected))
		for i, n := range selected {
			points += n
			parts[i] = strconv.Itoa(n)
		}
		explanation = fmt.Sprintf(
			"You have %d %s(s): score your top %d color group(s): %s.\nTotal Color Bonus: %d",
			keyCount, title(e.rules.BonusKey), groups, strings.Join(parts, " + "), points)
	default:
		// No key: only the largest color group counts.
		for _, n := range colorCounts {
			if n > points {
				points = n
			}
		}
		explanation = fmt.Sprintf(
			"No %ss: score your largest color group only.\nTotal Color Bonus: %d",
			title(e.rules.BonusKey), points)
	}

	// Distribution by outcome. Only the opponent-of-failed-caller case
	// changes the value; the others only change the explanation.
	switch {
	case outcome.IsCaller && outcome.CallerSucceeded:
		explanation += "\n(Called Last Chance and succeeded: you keep your full points plus this bonus.)"
	case outcome.IsCaller:
		explanation += "\n(Called Last Chance and failed: you score only this color bonus.)"
	case outcome.CallerSucceeded:
		explanation += "\n(Another player called Last Chance and succeeded: you score only this color bonus.)"
	default:
		points = 0
		explanation += "\n(Caller failed their Last Chance: you score your normal card points only, no color bonus.)"
	}

	return BonusResult{Points: points, Explanation: explanation}
}
