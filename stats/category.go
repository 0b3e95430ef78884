package stats

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCategoryRules []byte

var ErrInvalidCategoryRules = errors.New("invalid tournament category rules")

type categoryRule struct {
	Name     string   `yaml:"name"`
	Prefixes []string `yaml:"prefixes"`
}

type categoryConfig struct {
	Unknown    string         `yaml:"unknown"`
	Categories []categoryRule `yaml:"categories"`

	// Категории чемпионата, по которым считаются очки "только лига"
	LeagueCategories []string `yaml:"league_categories"`
}

// Categorizer относит турнир к категории по началу названия. Первое совпавшее правило побеждает.
type Categorizer struct {
	unknown string
	rules   []categoryRule
	leagues map[string]bool
}

func ParseCategorizer(data []byte) (*Categorizer, error) {
	var cfg categoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCategoryRules, err)
	}
	if cfg.Unknown == "" || len(cfg.Categories) == 0 {
		return nil, fmt.Errorf("%w: unknown bucket and at least one category are required", ErrInvalidCategoryRules)
	}

	rules := make([]categoryRule, 0, len(cfg.Categories))
	for _, rule := range cfg.Categories {
		if rule.Name == "" || len(rule.Prefixes) == 0 {
			return nil, fmt.Errorf("%w: category %q has no prefixes", ErrInvalidCategoryRules, rule.Name)
		}
		lowered := make([]string, 0, len(rule.Prefixes))
		for _, p := range rule.Prefixes {
			lowered = append(lowered, strings.ToLower(p))
		}
		rules = append(rules, categoryRule{Name: rule.Name, Prefixes: lowered})
	}

	leagues := make(map[string]bool, len(cfg.LeagueCategories))
	for _, name := range cfg.LeagueCategories {
		if !hasCategory(rules, name) {
			return nil, fmt.Errorf("%w: league category %q is not defined", ErrInvalidCategoryRules, name)
		}
		leagues[name] = true
	}
	return &Categorizer{unknown: cfg.Unknown, rules: rules, leagues: leagues}, nil
}

func hasCategory(rules []categoryRule, name string) bool {
	for _, rule := range rules {
		if rule.Name == name {
			return true
		}
	}
	return false
}

// LoadCategorizer читает правила из файла; пустой путь означает встроенные правила.
func LoadCategorizer(path string) (*Categorizer, error) {
	if path == "" {
		return DefaultCategorizer(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category rules %s: %w", path, err)
	}
	return ParseCategorizer(data)
}

func DefaultCategorizer() *Categorizer {
	c, err := ParseCategorizer(defaultCategoryRules)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Categorizer) Classify(title string) string {
	lowered := strings.ToLower(strings.TrimSpace(title))
	for _, rule := range c.rules {
		for _, prefix := range rule.Prefixes {
			if strings.HasPrefix(lowered, prefix) {
				return rule.Name
			}
		}
	}
	return c.unknown
}

// IsLeague сообщает, относится ли турнир к чемпионату (лиге), а не к кубкам.
func (c *Categorizer) IsLeague(title string) bool {
	return c.leagues[c.Classify(title)]
}

func (c *Categorizer) Unknown() string {
	return c.unknown
}
