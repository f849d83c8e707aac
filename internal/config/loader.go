package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the sling configuration.
// Search order: customPath -> ~/.sling/configs/sling.yaml -> ./configs/sling.yaml -> embedded default
//
// Files are merged over the defaults, so a partial file only overrides
// the fields it names. Values that would break the simulation (zero
// divisors, non-positive world dimensions) are restored to defaults.
func Load(customPath string) (SlingConfig, error) {
	cfg := DefaultSlingConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.sanitize()
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sling.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				cfg.sanitize()
				return cfg, nil
			}
			cfg = DefaultSlingConfig() // Discard a half-applied parse
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sling.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			cfg.sanitize()
			return cfg, nil
		}
		cfg = DefaultSlingConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSlingYAML, &cfg); err != nil {
		return DefaultSlingConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// sanitize restores defaults for loaded values that downstream code
// divides by or cannot operate with. An explicit zero in a config file
// is an authoring error, not a request for infinite launch velocity.
func (c *SlingConfig) sanitize() {
	def := DefaultSlingConfig()
	if c.Physics.WorldWidth <= 0 {
		c.Physics.WorldWidth = def.Physics.WorldWidth
	}
	if c.Physics.WorldHeight <= 0 {
		c.Physics.WorldHeight = def.Physics.WorldHeight
	}
	if c.Sling.PowerDivisor <= 0 {
		c.Sling.PowerDivisor = def.Sling.PowerDivisor
	}
	if c.Sling.PowerCap <= 0 {
		c.Sling.PowerCap = def.Sling.PowerCap
	}
	if c.Sling.PowerScale <= 0 {
		c.Sling.PowerScale = def.Sling.PowerScale
	}
	if c.Sling.GrabRadiusFactor <= 0 {
		c.Sling.GrabRadiusFactor = def.Sling.GrabRadiusFactor
	}
	if c.Sling.MaxPull <= 0 {
		c.Sling.MaxPull = def.Sling.MaxPull
	}
	if c.Damage.HealthScale <= 0 {
		c.Damage.HealthScale = def.Damage.HealthScale
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sling", "configs", filename)
}
