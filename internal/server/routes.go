package server

import (
	"encoding/json"
	"log"
	"net/http"

	"seasalt-bot/internal/protocol"
	"seasalt-bot/internal/scoring"
)

// HandleRoutes registers the REST API alongside the websocket
// transport. Both surfaces call the same pure engine.
func HandleRoutes(engine *scoring.Engine) {
	http.HandleFunc("/api/score", func(w http.ResponseWriter, r *http.Request) {
		ScoreHandler(engine, w, r)
	})
	log.Println("Registered route: /api/score")

	http.HandleFunc("/api/bonus", func(w http.ResponseWriter, r *http.Request) {
		BonusHandler(engine, w, r)
	})
	log.Println("Registered route: /api/bonus")

	http.HandleFunc("/api/health", HealthHandler)
	log.Println("Registered route: /api/health")
}

// ScoreHandler computes the base score for the "cards" query parameter.
func ScoreHandler(engine *scoring.Engine, w http.ResponseWriter, r *http.Request) {
	cards := r.URL.Query().Get("cards")
	if cards == "" {
		http.Error(w, "cards query parameter is required", http.StatusBadRequest)
		return
	}

	res := engine.ComputeScore(cards)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.ScoreResultPayload{
		Status:  res.Status.String(),
		Total:   res.Total,
		Lines:   res.Lines,
		Message: res.Message,
	})
}

// BonusHandler computes the color bonus for the "cards" and "outcome"
// query parameters.
func BonusHandler(engine *scoring.Engine, w http.ResponseWriter, r *http.Request) {
	cards := r.URL.Query().Get("cards")
	if cards == "" {
		http.Error(w, "cards query parameter is required", http.StatusBadRequest)
		return
	}

	outcome, ok := roundOutcome(r.URL.Query().Get("outcome"))
	if !ok {
		http.Error(w, "outcome must be caller_win, caller_fail, other_win or stop", http.StatusBadRequest)
		return
	}

	res := engine.ComputeColorBonus(cards, outcome)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(protocol.BonusResultPayload{
		Points:      res.Points,
		Explanation: res.Explanation,
	})
}

// HealthHandler reports liveness.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
