package protocol

import (
	"encoding/json"

	"seasalt-bot/internal/scoring"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "score_request", "question")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// Message types.
const (
	TypeHello        = "hello"
	TypeWelcome      = "welcome"
	TypeScoreRequest = "score_request"
	TypeScoreResult  = "score_result"
	TypeBonusRequest = "bonus_request"
	TypeBonusResult  = "bonus_result"
	TypeQuestion     = "question"
	TypeAnswer       = "answer"
	TypeError        = "error"
	TypePing         = "ping"
	TypePong         = "pong"
)

// Round outcome choices, the four ways a round can end.
const (
	OutcomeCallerWin  = "caller_win"  // player called Last Chance and won
	OutcomeCallerFail = "caller_fail" // player called Last Chance and lost
	OutcomeOtherWin   = "other_win"   // another player called and won
	OutcomeStop       = "stop"        // round ended normally with Stop
)

// --- Client -> Server Payload Structs ---

type ScoreRequestPayload struct {
	Cards string `json:"cards"` // free-form card list, e.g. "2 crabs, 4 shells"
}

type BonusRequestPayload struct {
	Cards   string `json:"cards"`   // color counts plus mermaids, e.g. "4 blue, 1 mermaid"
	Outcome string `json:"outcome"` // one of the Outcome* constants
}

type QuestionPayload struct {
	Text string `json:"text"`
}

// --- Server -> Client Payload Structs ---

type WelcomePayload struct {
	Message string `json:"message"`
}

type ScoreResultPayload struct {
	Status  string         `json:"status"`
	Total   int            `json:"total"`
	Lines   []scoring.Line `json:"lines,omitempty"`
	Message string         `json:"message,omitempty"`
}

type BonusResultPayload struct {
	Points      int    `json:"points"`
	Explanation string `json:"explanation"`
}

type AnswerPayload struct {
	Text string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Helper function to create a JSON message
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	// Handle nil payload specifically
	if payload == nil {
		msg := Message{
			Type:    msgType,
			Payload: nil,
		}
		return json.Marshal(msg)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
