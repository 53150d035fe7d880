package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seasalt-bot/internal/cards"
	"seasalt-bot/internal/scoring"
)

func newParser() *scoring.Parser {
	return scoring.NewParser(cards.DefaultVocabulary())
}

func TestParseCaseAndPluralInsensitive(t *testing.T) {
	p := newParser()
	assert.Equal(t, p.Parse("2 crab"), p.Parse("2 Crabs"))
	assert.Equal(t, cards.Count{cards.Crab: 2}, p.Parse("2 CRABS"))
}

func TestParseLongestFormWins(t *testing.T) {
	p := newParser()
	counts := p.Parse("3 shoal of fish")
	assert.Equal(t, cards.Count{cards.Shoal: 3}, counts)

	counts = p.Parse("1 penguin colony and 2 penguins")
	assert.Equal(t, cards.Count{cards.Colony: 1, cards.Penguin: 2}, counts)
}

func TestParseAccumulatesRepeatedTypes(t *testing.T) {
	p := newParser()
	counts := p.Parse("2 crabs, 3 shells and 2 crabs")
	assert.Equal(t, 4, counts[cards.Crab])
	assert.Equal(t, 3, counts[cards.Shell])
}

func TestParseIgnoresUnknownTokens(t *testing.T) {
	p := newParser()
	counts := p.Parse("5 dragons, 2 crabs, banana")
	assert.Equal(t, cards.Count{cards.Crab: 2}, counts)
}

func TestParseEmptyInput(t *testing.T) {
	p := newParser()
	assert.True(t, p.Parse("").Empty())
	assert.True(t, p.Parse("no numbers here").Empty())
}
