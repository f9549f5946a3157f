package animset

import (
	"fmt"

	"github.com/milk9111/animfold/anim"
)

// ConfigSpec is the YAML form of anim.Config. Zero fields keep defaults.
type ConfigSpec struct {
	AnimatorCapacity int      `yaml:"animator_capacity"`
	Hysteresis       *float64 `yaml:"hysteresis"`
	EventPolicy      string   `yaml:"event_policy"`
	LogLevel         string   `yaml:"log_level"`
}

func (c ConfigSpec) Config() (anim.Config, error) {
	cfg := anim.DefaultConfig()
	if c.AnimatorCapacity > 0 {
		cfg.AnimatorCapacity = c.AnimatorCapacity
	}
	if c.Hysteresis != nil {
		if *c.Hysteresis < 0 {
			return cfg, fmt.Errorf("animset: negative hysteresis %v", *c.Hysteresis)
		}
		cfg.Hysteresis = *c.Hysteresis
	}
	policy, err := anim.ParseEventPolicy(c.EventPolicy)
	if err != nil {
		return cfg, fmt.Errorf("animset: %w", err)
	}
	cfg.EventPolicy = policy
	return cfg, nil
}

// LoadConfig reads an engine config file. An empty name yields defaults.
func LoadConfig(name string) (anim.Config, ConfigSpec, error) {
	if name == "" {
		return anim.DefaultConfig(), ConfigSpec{}, nil
	}
	spec, err := LoadSpec[ConfigSpec](name)
	if err != nil {
		return anim.DefaultConfig(), spec, err
	}
	cfg, err := spec.Config()
	if err != nil {
		return anim.DefaultConfig(), spec, fmt.Errorf("animset: config %s: %w", name, err)
	}
	return cfg, spec, nil
}
