package cards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CollectorRule scores a card type as a step function of its count.
// Table index 0 is the value for zero cards; counts past the last
// index clamp to the final tier.
type CollectorRule struct {
	Type  CardType `yaml:"type"`
	Table []int    `yaml:"table"`
}

// Clamp bounds a raw count to a valid table index.
func (r CollectorRule) Clamp(count int) int {
	if count < 0 {
		return 0
	}
	if count >= len(r.Table) {
		return len(r.Table) - 1
	}
	return count
}

// Points returns the table value for the clamped count.
func (r CollectorRule) Points(count int) int {
	return r.Table[r.Clamp(count)]
}

// DuoRule scores one point per full pair of the card type.
type DuoRule struct {
	Type CardType `yaml:"type"`
}

// ComboRule pairs card type A against card type B one-for-one; each
// combo scores one point and consumes one of each.
type ComboRule struct {
	A CardType `yaml:"a"`
	B CardType `yaml:"b"`
}

// ConversionRule designates a card type that upgrades an existing duo
// or combo pair from one point to three, consuming one conversion card
// and one pair unit per application.
type ConversionRule struct {
	Type CardType `yaml:"type"`
}

// MultiplierRule scores count(Type) * count(Target) * Scalar.
type MultiplierRule struct {
	Type   CardType `yaml:"type"`
	Target CardType `yaml:"target"`
	Scalar int      `yaml:"scalar"`
}

// SubstitutionRule designates a wildcard card type whose units are
// greedily assigned to whichever collector gains the most from one
// extra card.
type SubstitutionRule struct {
	Type CardType `yaml:"type"`
}

// Ruleset is the full declarative scoring configuration. Adding a card
// type is a data change here, not new branching logic in the engine.
type Ruleset struct {
	Collectors    []CollectorRule    `yaml:"collectors"`
	Duos          []DuoRule          `yaml:"duos"`
	Combos        []ComboRule        `yaml:"combos"`
	Conversions   []ConversionRule   `yaml:"conversions"`
	Multipliers   []MultiplierRule   `yaml:"multipliers"`
	Substitutions []SubstitutionRule `yaml:"substitutions"`
	// BonusKey is excluded from base scoring; it only unlocks the
	// color bonus calculation.
	BonusKey CardType `yaml:"bonus_key"`
}

// DefaultRuleset carries the official point tables and relationships.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Collectors: []CollectorRule{
			{Type: Shell, Table: []int{0, 0, 2, 4, 6, 8, 10}},
			{Type: Octopus, Table: []int{0, 0, 3, 6, 9, 12}},
			{Type: Penguin, Table: []int{0, 1, 3, 5}},
			{Type: Sailor, Table: []int{0, 0, 5}},
		},
		Duos: []DuoRule{
			{Type: Crab},
			{Type: Boat},
			{Type: Fish},
		},
		Combos: []ComboRule{
			{A: Shark, B: Swimmer},
			{A: Crab, B: Lobster},
		},
		Conversions: []ConversionRule{
			{Type: Seahorse},
		},
		Multipliers: []MultiplierRule{
			{Type: Lighthouse, Target: Boat, Scalar: 1},
			{Type: Shoal, Target: Fish, Scalar: 1},
			{Type: Colony, Target: Penguin, Scalar: 2},
			{Type: Captain, Target: Sailor, Scalar: 3},
			{Type: Basket, Target: Crab, Scalar: 1},
		},
		Substitutions: []SubstitutionRule{
			{Type: Starfish},
		},
		BonusKey: Mermaid,
	}
}

// LoadRuleset reads a YAML ruleset override file.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("read ruleset: %w", err)
	}
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return Ruleset{}, fmt.Errorf("parse ruleset: %w", err)
	}
	return rs, nil
}

// Validate checks the ruleset against a vocabulary: every referenced
// type must be reachable from some surface form, collector tables must
// be non-empty and score zero cards as zero, and the bonus key must not
// appear in any base scoring rule.
func (rs Ruleset) Validate(v *Vocabulary) error {
	known := v.Types()
	check := func(t CardType, where string) error {
		if !known[t] {
			return fmt.Errorf("ruleset %s references unknown card type %q", where, t)
		}
		if t == rs.BonusKey {
			return fmt.Errorf("bonus key %q must not appear in %s", t, where)
		}
		return nil
	}

	for _, c := range rs.Collectors {
		if err := check(c.Type, "collector"); err != nil {
			return err
		}
		if len(c.Table) == 0 {
			return fmt.Errorf("collector %q has an empty point table", c.Type)
		}
		if c.Table[0] != 0 {
			return fmt.Errorf("collector %q must score zero cards as zero", c.Type)
		}
	}
	for _, d := range rs.Duos {
		if err := check(d.Type, "duo"); err != nil {
			return err
		}
	}
	for _, c := range rs.Combos {
		if err := check(c.A, "combo"); err != nil {
			return err
		}
		if err := check(c.B, "combo"); err != nil {
			return err
		}
	}
	for _, c := range rs.Conversions {
		if err := check(c.Type, "conversion"); err != nil {
			return err
		}
	}
	for _, m := range rs.Multipliers {
		if err := check(m.Type, "multiplier"); err != nil {
			return err
		}
		if err := check(m.Target, "multiplier"); err != nil {
			return err
		}
		if m.Scalar <= 0 {
			return fmt.Errorf("multiplier %q has non-positive scalar %d", m.Type, m.Scalar)
		}
	}
	for _, s := range rs.Substitutions {
		if err := check(s.Type, "substitution"); err != nil {
			return err
		}
	}
	if rs.BonusKey != "" && !known[rs.BonusKey] {
		return fmt.Errorf("bonus key %q is not in the vocabulary", rs.BonusKey)
	}
	return nil
}
