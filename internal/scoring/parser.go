package scoring

import (
	"regexp"
	"strconv"
	"strings"

	"seasalt-bot/internal/cards"
)

// Parser extracts "<count> <card name>" pairs from free-form text
// against a fixed vocabulary.
type Parser struct {
	vocab   *cards.Vocabulary
	pattern *regexp.Regexp
}

// NewParser compiles the match pattern once. Vocabulary forms are
// alternated longest first so "shoal of fish" wins over "fish".
func NewParser(vocab *cards.Vocabulary) *Parser {
	forms := vocab.Forms()
	quoted := make([]string, len(forms))
	for i, f := range forms {
		quoted[i] = regexp.QuoteMeta(f)
	}
	pattern := regexp.MustCompile(`(?i)(\d+)\s+(` + strings.Join(quoted, "|") + `)`)
	return &Parser{vocab: vocab, pattern: pattern}
}

// Parse returns the canonical card counts found in text. Repeated
// mentions of the same type accumulate. Unrecognized tokens are
// ignored; an empty result is a valid output, not an error.
func (p *Parser) Parse(text string) cards.Count {
	counts := cards.Count{}
	for _, m := range p.pattern.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if t, ok := p.vocab.Canonical(m[2]); ok {
			counts.Add(t, n)
		}
	}
	return counts
}
