package server

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"seasalt-bot/internal/protocol"
	"seasalt-bot/internal/scoring"
)

const (
	welcomeMessage = "Hello! I am the Game Master. Ask me anything about the rules of " +
		"Sea Salt & Paper, or send score_request and bonus_request messages with your cards."
	assistantDisabledMessage = "The rules assistant is not configured on this server. " +
		"Score and color bonus commands still work."
	rateLimitedMessage  = "You're asking questions too quickly. Please wait a moment and try again."
	answerFailedMessage = "Sorry, I had trouble generating an answer. Please try asking again."
)

// handleMessage dispatches one client message. Runs on the hub loop.
func (h *Hub) handleMessage(cm clientMessage) {
	c, msg := cm.client, cm.message

	switch msg.Type {
	case protocol.TypeHello:
		h.send(c, protocol.TypeWelcome, protocol.WelcomePayload{Message: welcomeMessage})

	case protocol.TypeScoreRequest:
		var payload protocol.ScoreRequestPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: "Invalid score_request payload."})
			return
		}
		res := h.engine.ComputeScore(payload.Cards)
		h.send(c, protocol.TypeScoreResult, protocol.ScoreResultPayload{
			Status:  res.Status.String(),
			Total:   res.Total,
			Lines:   res.Lines,
			Message: res.Message,
		})

	case protocol.TypeBonusRequest:
		var payload protocol.BonusRequestPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: "Invalid bonus_request payload."})
			return
		}
		outcome, ok := roundOutcome(payload.Outcome)
		if !ok {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{
				Message: "Unknown outcome; use caller_win, caller_fail, other_win or stop.",
			})
			return
		}
		res := h.engine.ComputeColorBonus(payload.Cards, outcome)
		h.send(c, protocol.TypeBonusResult, protocol.BonusResultPayload{
			Points:      res.Points,
			Explanation: res.Explanation,
		})

	case protocol.TypeQuestion:
		var payload protocol.QuestionPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: "Invalid question payload."})
			return
		}
		question := strings.TrimSpace(payload.Text)
		if question == "" {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: "Please include a question."})
			return
		}
		if h.answerer == nil {
			h.send(c, protocol.TypeAnswer, protocol.AnswerPayload{Text: assistantDisabledMessage})
			return
		}
		if h.limiter != nil && !h.limiter.Allow(c.ID) {
			h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: rateLimitedMessage})
			return
		}
		go h.answerQuestion(c, question)

	case protocol.TypePing:
		h.send(c, protocol.TypePong, nil)

	default:
		h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: "Unknown message type: " + msg.Type})
	}
}

// roundOutcome maps a wire outcome choice to the three round flags. An
// empty choice defaults to caller_win, matching the original prompt.
func roundOutcome(choice string) (scoring.RoundOutcome, bool) {
	switch choice {
	case protocol.OutcomeCallerWin, "":
		return scoring.RoundOutcome{CalledLastChance: true, IsCaller: true, CallerSucceeded: true}, true
	case protocol.OutcomeCallerFail:
		return scoring.RoundOutcome{CalledLastChance: true, IsCaller: true}, true
	case protocol.OutcomeOtherWin:
		return scoring.RoundOutcome{CalledLastChance: true, CallerSucceeded: true}, true
	case protocol.OutcomeStop:
		return scoring.RoundOutcome{IsCaller: true, CallerSucceeded: true}, true
	default:
		return scoring.RoundOutcome{}, false
	}
}

// answerQuestion runs the assistant chain off the hub loop and sends
// the answer (or a friendly failure) back to the client.
func (h *Hub) answerQuestion(c *Client, question string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.questionTimeout)
	defer cancel()

	history := c.historySnapshot()
	answer, err := h.answerer.Answer(ctx, question, history)
	if err != nil {
		log.Printf("Error answering question for client %s: %v", c.ID, err)
		h.send(c, protocol.TypeError, protocol.ErrorPayload{Message: answerFailedMessage})
		return
	}

	c.appendHistory(question, answer, h.historyLimit)
	h.send(c, protocol.TypeAnswer, protocol.AnswerPayload{Text: answer})
}
