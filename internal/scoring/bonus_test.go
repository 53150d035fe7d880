package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seasalt-bot/internal/scoring"
)

var callerWin = scoring.RoundOutcome{CalledLastChance: true, IsCaller: true, CallerSucceeded: true}

func TestBonusStopGate(t *testing.T) {
	res := newEngine().ComputeColorBonus("4 blue, 3 pink, 2 mermaid", scoring.RoundOutcome{})
	assert.Zero(t, res.Points)
	assert.Contains(t, res.Explanation, "Stop")
}

func TestBonusUsageOnMalformedInput(t *testing.T) {
	res := newEngine().ComputeColorBonus("no cards at all", callerWin)
	assert.Zero(t, res.Points)
	assert.Contains(t, res.Explanation, "/color_bonus")
}

func TestBonusWithoutKeyScoresLargestGroupOnly(t *testing.T) {
	res := newEngine().ComputeColorBonus("4 blue, 3 pink, 1 yellow", callerWin)
	assert.Equal(t, 4, res.Points)
	assert.Contains(t, res.Explanation, "largest color group")
}

func TestBonusKeyUnlocksTopGroups(t *testing.T) {
	res := newEngine().ComputeColorBonus("4 blue, 3 pink, 1 yellow, 2 mermaids", callerWin)
	assert.Equal(t, 7, res.Points)
	assert.Contains(t, res.Explanation, "4 + 3")
}

func TestBonusKeyCountClampedToGroupCount(t *testing.T) {
	res := newEngine().ComputeColorBonus("3 blue, 5 mermaid", callerWin)
	assert.Equal(t, 3, res.Points)
}

func TestBonusKeyWithoutColorsIsDegenerate(t *testing.T) {
	res := newEngine().ComputeColorBonus("2 mermaid", callerWin)
	assert.Zero(t, res.Points)
	assert.Contains(t, res.Explanation, "nothing to unlock")
}

func TestBonusOutcomeDistribution(t *testing.T) {
	e := newEngine()
	text := "4 blue, 3 pink, 2 mermaid"

	callerFail := scoring.RoundOutcome{CalledLastChance: true, IsCaller: true}
	otherWin := scoring.RoundOutcome{CalledLastChance: true, CallerSucceeded: true}
	otherFail := scoring.RoundOutcome{CalledLastChance: true}

	// Value is unchanged for three of the four cases.
	assert.Equal(t, 7, e.ComputeColorBonus(text, callerWin).Points)
	assert.Equal(t, 7, e.ComputeColorBonus(text, callerFail).Points)
	assert.Equal(t, 7, e.ComputeColorBonus(text, otherWin).Points)

	// An opponent of a failed caller gets no color bonus.
	res := e.ComputeColorBonus(text, otherFail)
	assert.Zero(t, res.Points)
	assert.Contains(t, res.Explanation, "normal card points only")
}

func TestBonusExplanationsDifferByOutcome(t *testing.T) {
	e := newEngine()
	text := "4 blue, 1 mermaid"
	win := e.ComputeColorBonus(text, callerWin)
	fail := e.ComputeColorBonus(text, scoring.RoundOutcome{CalledLastChance: true, IsCaller: true})
	assert.NotEqual(t, win.Explanation, fail.Explanation)
	assert.Equal(t, win.Points, fail.Points)
}
