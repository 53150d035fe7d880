package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasalt-bot/internal/cards"
	"seasalt-bot/internal/protocol"
	"seasalt-bot/internal/scoring"
)

func testEngine() *scoring.Engine {
	return scoring.NewEngine(cards.DefaultVocabulary(), cards.DefaultRuleset())
}

func TestScoreHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/score?cards=2+crabs,+4+shells", nil)
	ScoreHandler(testEngine(), rec, req)

	require.Equal(t, 200, rec.Code)
	var payload protocol.ScoreResultPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload.Status)
	assert.Equal(t, 7, payload.Total)
}

func TestScoreHandlerMissingCards(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/score", nil)
	ScoreHandler(testEngine(), rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestScoreHandlerNoCardsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/score?cards=gibberish", nil)
	ScoreHandler(testEngine(), rec, req)

	require.Equal(t, 200, rec.Code)
	var payload protocol.ScoreResultPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "no_cards", payload.Status)
	assert.NotEmpty(t, payload.Message)
}

func TestBonusHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bonus?cards=4+blue,+3+pink,+2+mermaid&outcome=other_win", nil)
	BonusHandler(testEngine(), rec, req)

	require.Equal(t, 200, rec.Code)
	var payload protocol.BonusResultPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 7, payload.Points)
}

func TestBonusHandlerBadOutcome(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/bonus?cards=4+blue&outcome=maybe", nil)
	BonusHandler(testEngine(), rec, req)
	assert.Equal(t, 400, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/health", nil)
	HealthHandler(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
