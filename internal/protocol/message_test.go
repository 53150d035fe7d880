package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seasalt-bot/internal/protocol"
	"seasalt-bot/internal/scoring"
)

func TestNewMessageRoundTrip(t *testing.T) {
	raw, err := protocol.NewMessage(protocol.TypeScoreResult, protocol.ScoreResultPayload{
		Status: "ok",
		Total:  7,
		Lines: []scoring.Line{
			{Description: "4 Shells: 6 pts", Points: 6},
			{Description: "1 pair(s) of Crabs: 1 pts", Points: 1},
		},
	})
	require.NoError(t, err)

	var msg protocol.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, protocol.TypeScoreResult, msg.Type)

	var payload protocol.ScoreResultPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, 7, payload.Total)
	require.Len(t, payload.Lines, 2)
	assert.Equal(t, 6, payload.Lines[0].Points)
}

func TestNewMessageNilPayload(t *testing.T) {
	raw, err := protocol.NewMessage(protocol.TypePong, nil)
	require.NoError(t, err)

	var msg protocol.Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, protocol.TypePong, msg.Type)
	assert.Empty(t, msg.Payload)
}
