package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAttract loads the attract simulation configuration.
// Search order: customPath -> ~/.kiosk-idle/configs/attract.yaml -> ./configs/attract.yaml -> embedded default.
// Files only need to list the keys they override.
func LoadAttract(customPath string) (AttractConfig, error) {
	cfg := embeddedAttract()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath("attract.yaml"), filepath.Join("configs", "attract.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		overlay := cfg
		if err := yaml.Unmarshal(data, &overlay); err == nil && overlay.Validate() == nil {
			return overlay, nil
		}
	}

	return cfg, nil
}

// embeddedAttract parses the embedded default YAML.
func embeddedAttract() AttractConfig {
	var cfg AttractConfig
	if err := yaml.Unmarshal(defaultAttractYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultAttractConfig() // Fallback to hardcoded if embed is broken
	}
	return cfg
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kiosk-idle", "configs", filename)
}

// ApplyAttractPreset modifies the config based on a difficulty preset.
func ApplyAttractPreset(cfg *AttractConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust chaser pressure and power mode length
	switch preset {
	case DifficultyEasy:
		cfg.Power.DurationSecs = 12
		scaleSpeeds(&cfg.Chasers.Speeds, 0.8)
	case DifficultyHard:
		cfg.Power.DurationSecs = 7
		scaleSpeeds(&cfg.Chasers.Speeds, 1.25)
	}
}

func scaleSpeeds(s *PersonalitySpeeds, k float64) {
	s.Aggressive *= k
	s.Smart *= k
	s.Random *= k
	s.Ambusher *= k
}
