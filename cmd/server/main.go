package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"seasalt-bot/internal/assistant"
	"seasalt-bot/internal/cards"
	"seasalt-bot/internal/config"
	"seasalt-bot/internal/knowledge"
	"seasalt-bot/internal/scoring"
	"seasalt-bot/internal/server"
)

func main() {
	log.Println("Starting Sea Salt & Paper game master...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	vocab := cards.DefaultVocabulary()
	rules := cards.DefaultRuleset()
	if cfg.RulesetPath != "" {
		rules, err = cards.LoadRuleset(cfg.RulesetPath)
		if err != nil {
			log.Fatalf("Failed to load ruleset %s: %v", cfg.RulesetPath, err)
		}
		log.Printf("Loaded ruleset override from %s", cfg.RulesetPath)
	}
	if err := rules.Validate(vocab); err != nil {
		log.Fatalf("Invalid ruleset: %v", err)
	}

	engine := scoring.NewEngine(vocab, rules)

	answerer := buildAssistant(cfg)

	limiter := server.NewSessionLimiter(rate.Limit(cfg.QuestionsPerMinute/60), cfg.QuestionBurst)
	hub := server.NewHub(engine, answerer, limiter, cfg.HistoryLimit)
	go hub.Run()

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		server.ServeWs(hub, w, r)
	})
	server.HandleRoutes(engine)

	log.Printf("Listening on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, nil))
}

// buildAssistant wires the knowledge store and OpenAI adapters into the
// QA chain. Returns nil when no API key is configured, which runs the
// server in scoring-only mode.
func buildAssistant(cfg config.Config) server.Answerer {
	if cfg.OpenAIAPIKey == "" {
		log.Println("OPENAI_API_KEY not set, rules assistant disabled")
		return nil
	}

	store, err := knowledge.New(cfg.KnowledgeDBPath)
	if err != nil {
		log.Fatalf("Failed to open knowledge store: %v", err)
	}

	embedder := assistant.NewEmbeddingClient(assistant.EmbeddingConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.EmbeddingModel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := knowledge.NewIndexer(store, embedder).IndexDir(ctx, cfg.RulesDir); err != nil {
		log.Fatalf("Failed to index rules from %s: %v", cfg.RulesDir, err)
	}

	chat := assistant.NewChatClient(assistant.ChatConfig{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.ChatModel,
		Temperature: cfg.Temperature,
	})

	return assistant.NewChain(store, embedder, chat, cfg.RetrievalK)
}
