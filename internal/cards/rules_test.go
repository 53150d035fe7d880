package cards_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasalt-bot/internal/cards"
)

func TestDefaultRulesetValid(t *testing.T) {
	rs := cards.DefaultRuleset()
	assert.NoError(t, rs.Validate(cards.DefaultVocabulary()))
	assert.Equal(t, cards.Mermaid, rs.BonusKey)
}

func TestCollectorClampAndPoints(t *testing.T) {
	r := cards.CollectorRule{Type: cards.Shell, Table: []int{0, 0, 2, 4, 6, 8, 10}}
	assert.Equal(t, 0, r.Points(0))
	assert.Equal(t, 6, r.Points(4))
	assert.Equal(t, 10, r.Points(6))
	assert.Equal(t, 10, r.Points(25))
	assert.Equal(t, 0, r.Clamp(-1))
}

func TestValidateRejectsUnknownType(t *testing.T) {
	rs := cards.DefaultRuleset()
	rs.Duos = append(rs.Duos, cards.DuoRule{Type: "dragon"})
	assert.Error(t, rs.Validate(cards.DefaultVocabulary()))
}

func TestValidateRejectsScoringBonusKey(t *testing.T) {
	rs := cards.DefaultRuleset()
	rs.Duos = append(rs.Duos, cards.DuoRule{Type: cards.Mermaid})
	assert.Error(t, rs.Validate(cards.DefaultVocabulary()))
}

func TestValidateRejectsBadTable(t *testing.T) {
	rs := cards.DefaultRuleset()
	rs.Collectors[0].Table = []int{1, 2}
	assert.Error(t, rs.Validate(cards.DefaultVocabulary()))
}

func TestLoadRuleset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	data := `
collectors:
  - type: shell
    table: [0, 0, 2, 4, 6, 8, 10]
duos:
  - type: crab
combos:
  - a: shark
    b: swimmer
multipliers:
  - type: lighthouse
    target: boat
    scalar: 1
bonus_key: mermaid
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rs, err := cards.LoadRuleset(path)
	require.NoError(t, err)
	assert.NoError(t, rs.Validate(cards.DefaultVocabulary()))
	require.Len(t, rs.Collectors, 1)
	assert.Equal(t, cards.Shell, rs.Collectors[0].Type)
	assert.Equal(t, []int{0, 0, 2, 4, 6, 8, 10}, rs.Collectors[0].Table)
	assert.Equal(t, cards.Mermaid, rs.BonusKey)
}

func TestLoadRulesetMissingFile(t *testing.T) {
	_, err := cards.LoadRuleset(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
