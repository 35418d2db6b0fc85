package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PixelsForGlory/lsystem/internal/grammar"
)

const (
	DefaultAngle       = 90.0
	DefaultStep        = 1.0
	DefaultGenerations = 3
)

type Config struct {
	Axiom       string  `yaml:"axiom"`
	Angle       float64 `yaml:"angle"`
	Step        float64 `yaml:"step"`
	Pens        string  `yaml:"pens,omitempty"`
	Generations int     `yaml:"generations"`
	Seed        int64   `yaml:"seed"`
	Rules       []Rule  `yaml:"rules"`
}

type Rule struct {
	Predecessor string  `yaml:"predecessor"`
	Successor   string  `yaml:"successor"`
	Left        string  `yaml:"left,omitempty"`
	Right       string  `yaml:"right,omitempty"`
	Chance      float64 `yaml:"chance,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Axiom:       "F",
		Angle:       DefaultAngle,
		Step:        DefaultStep,
		Generations: DefaultGenerations,
		Rules: []Rule{
			{Predecessor: "F", Successor: "F+F-F-F+F"},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Axiom == "" {
		return fmt.Errorf("config: axiom must not be empty")
	}
	if len(c.Rules) == 0 {
		return fmt.Errorf("config: at least one rule is required")
	}
	if c.Generations < 0 {
		return fmt.Errorf("config: generations must not be negative")
	}
	for i, r := range c.Rules {
		if r.Chance < 0 || r.Chance > 1 {
			return fmt.Errorf("config: rule %d: chance %g outside [0,1]", i, r.Chance)
		}
	}
	return nil
}

func (c *Config) Alphabet() grammar.Alphabet {
	return grammar.Alphabet{Angle: c.Angle, Step: c.Step, Pens: c.Pens}
}

func (c *Config) GrammarRules() []grammar.Rule {
	rules := make([]grammar.Rule, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = grammar.Rule{
			Predecessor: r.Predecessor,
			Successor:   r.Successor,
			Left:        r.Left,
			Right:       r.Right,
			Chance:      r.Chance,
		}
	}
	return rules
}
