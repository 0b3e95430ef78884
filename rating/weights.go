// Package rating считает сезонные очки команд и сводный рейтинг по цепочке сезонов.
package rating

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

var (
	ErrUnknownLeagueWeight = errors.New("no rating weight configured for league")
	ErrInvalidWeightRules  = errors.New("invalid league weight rules")
)

type matchMode string

const (
	matchExact  matchMode = "exact"
	matchPrefix matchMode = "prefix"
)

type weightRule struct {
	title  string
	match  matchMode
	weight decimal.Decimal
}

type weightEntry struct {
	Title  string    `yaml:"title"`
	Match  matchMode `yaml:"match"`
	Weight string    `yaml:"weight"`
}

type weightConfig struct {
	Leagues []weightEntry `yaml:"leagues"`
}

// Weights сопоставляет название турнира с его весом. Первое совпавшее правило побеждает.
type Weights struct {
	rules []weightRule
}

func ParseWeights(data []byte) (*Weights, error) {
	var cfg weightConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWeightRules, err)
	}
	if len(cfg.Leagues) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidWeightRules)
	}
	rules := make([]weightRule, 0, len(cfg.Leagues))
	for _, entry := range cfg.Leagues {
		if entry.Title == "" {
			return nil, fmt.Errorf("%w: rule without title", ErrInvalidWeightRules)
		}
		if entry.Match != matchExact && entry.Match != matchPrefix {
			return nil, fmt.Errorf("%w: %q has unknown match mode %q", ErrInvalidWeightRules, entry.Title, entry.Match)
		}
		weight, err := decimal.NewFromString(entry.Weight)
		if err != nil || !weight.IsPositive() {
			return nil, fmt.Errorf("%w: %q must have a positive weight, got %q", ErrInvalidWeightRules, entry.Title, entry.Weight)
		}
		rules = append(rules, weightRule{title: entry.Title, match: entry.Match, weight: weight})
	}
	return &Weights{rules: rules}, nil
}

// LoadWeights читает правила из файла; пустой путь означает встроенные правила.
func LoadWeights(path string) (*Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rating rules %s: %w", path, err)
	}
	return ParseWeights(data)
}

func DefaultWeights() *Weights {
	w, err := ParseWeights(defaultRules)
	if err != nil {
		panic(err)
	}
	return w
}

func (w *Weights) For(title string) (decimal.Decimal, error) {
	for _, rule := range w.rules {
		switch rule.match {
		case matchExact:
			if title == rule.title {
				return rule.weight, nil
			}
		case matchPrefix:
			if strings.HasPrefix(title, rule.title) {
				return rule.weight, nil
			}
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownLeagueWeight, title)
}
