package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds runtime settings, populated from environment variables.
// A .env file in the working directory is loaded automatically.
type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	KnowledgeDBPath string `env:"KNOWLEDGE_DB_PATH" envDefault:"./seasalt.db"`
	RulesDir        string `env:"RULES_DIR" envDefault:"./rules"`
	RulesetPath     string `env:"RULESET_PATH"` // optional YAML ruleset override

	OpenAIAPIKey   string  `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string  `env:"OPENAI_BASE_URL"`
	ChatModel      string  `env:"CHAT_MODEL" envDefault:"gpt-4o-mini"`
	EmbeddingModel string  `env:"EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
	Temperature    float64 `env:"CHAT_TEMPERATURE" envDefault:"0.7"`

	RetrievalK   int `env:"RETRIEVAL_K" envDefault:"3"`
	HistoryLimit int `env:"HISTORY_LIMIT" envDefault:"8"`

	QuestionsPerMinute float64 `env:"QUESTIONS_PER_MINUTE" envDefault:"6"`
	QuestionBurst      int     `env:"QUESTION_BURST" envDefault:"2"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
