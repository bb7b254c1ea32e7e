// Package config provides YAML-based configuration loading and difficulty
// management for the attract-mode simulation.
package config

import (
	"errors"
	"fmt"
)

// AttractConfig contains every tunable constant of the attract simulation.
type AttractConfig struct {
	Arena      ArenaConfig      `yaml:"arena"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Targets    TargetConfig     `yaml:"targets"`
	Chasers    ChaserConfig     `yaml:"chasers"`
	Seeker     SeekerConfig     `yaml:"seeker"`
	Power      PowerConfig      `yaml:"power"`
	Pathfinder PathfinderConfig `yaml:"pathfinder"`
	Timing     TimingConfig     `yaml:"timing"`
	Score      ScoreConfig      `yaml:"score"`
	Particles  ParticleConfig   `yaml:"particles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// ArenaConfig defines the normalized coordinate space.
type ArenaConfig struct {
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	Margin      float64 `yaml:"margin"`       // Agents stay within [min+margin, max-margin]
	AgentMargin float64 `yaml:"agent_margin"` // Obstacle margin used for agent movement
	SpawnMargin float64 `yaml:"spawn_margin"` // Obstacle margin used for spawn points
}

// ObstacleConfig defines per-session obstacle generation.
type ObstacleConfig struct {
	MinCount          int     `yaml:"min_count"`
	MaxCount          int     `yaml:"max_count"`
	MinSize           float64 `yaml:"min_size"`
	MaxSize           float64 `yaml:"max_size"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	Gap               float64 `yaml:"gap"`               // Minimum spacing between obstacles
	CenterZoneRadius  float64 `yaml:"center_zone_radius"` // Reserved circle around the arena center
	CornerZoneRadius  float64 `yaml:"corner_zone_radius"` // Reserved circles around the corner anchors
	CornerInset       float64 `yaml:"corner_inset"`       // Distance of corner anchors from the edges
}

// TargetConfig defines collectible seeding, spawning and scoring.
type TargetConfig struct {
	Initial         int     `yaml:"initial"`
	Cap             int     `yaml:"cap"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	SpecialChance   float64 `yaml:"special_chance"`
	PickupRadius    float64 `yaml:"pickup_radius"`
	Points          int     `yaml:"points"`
	SpecialPoints   int     `yaml:"special_points"`
}

// PersonalitySpeeds holds the base chaser speed per personality, in units per chaser tick.
type PersonalitySpeeds struct {
	Aggressive float64 `yaml:"aggressive"`
	Smart      float64 `yaml:"smart"`
	Random     float64 `yaml:"random"`
	Ambusher   float64 `yaml:"ambusher"`
}

// ChaserConfig defines chaser population and behaviour.
type ChaserConfig struct {
	Count            int               `yaml:"count"`
	PickupRadius     float64           `yaml:"pickup_radius"`
	Points           int               `yaml:"points"`
	RespawnDelayMs   int               `yaml:"respawn_delay_ms"`
	Speeds           PersonalitySpeeds `yaml:"speeds"`
	ScaredMultiplier float64           `yaml:"scared_multiplier"`
	Jitter           float64           `yaml:"jitter"`
	ModeMinTicks     int               `yaml:"mode_min_ticks"`
	ModeMaxTicks     int               `yaml:"mode_max_ticks"`
	TurnChance       float64           `yaml:"turn_chance"`
	EngageDistance   float64           `yaml:"engage_distance"`
	AmbushLookahead  float64           `yaml:"ambush_lookahead"`
	FleeRadius       float64           `yaml:"flee_radius"`
}

// SeekerConfig defines the seeker's steering.
type SeekerConfig struct {
	Speed          float64 `yaml:"speed"`
	ArrivalRadius  float64 `yaml:"arrival_radius"`
	WarningRadius  float64 `yaml:"warning_radius"`
	StuckEpsilon   float64 `yaml:"stuck_epsilon"`
	StuckThreshold int     `yaml:"stuck_threshold"`
	ReplanChance   float64 `yaml:"replan_chance"`
	SpecialWeight  float64 `yaml:"special_weight"` // Distance multiplier for special targets
	ChaserWeight   float64 `yaml:"chaser_weight"`  // Distance multiplier for fleeing chasers
}

// PowerConfig defines power mode.
type PowerConfig struct {
	DurationSecs int `yaml:"duration_secs"`
}

// PathfinderConfig defines the grid A* search.
type PathfinderConfig struct {
	GridSize       float64 `yaml:"grid_size"`
	MaxIterations  int     `yaml:"max_iterations"`
	CacheSize      int     `yaml:"cache_size"`
	CacheBypass    float64 `yaml:"cache_bypass"`
	AvoidRadius    float64 `yaml:"avoid_radius"`
	GoalFactor     float64 `yaml:"goal_factor"` // Success when within goal_factor * grid_size
	SmoothWindow   int     `yaml:"smooth_window"`
	ObstacleMargin float64 `yaml:"obstacle_margin"`
}

// TimingConfig defines the period of each logical loop in milliseconds.
type TimingConfig struct {
	ChaserMs    int `yaml:"chaser_ms"`
	SeekerMs    int `yaml:"seeker_ms"`
	CollisionMs int `yaml:"collision_ms"`
	ParticleMs  int `yaml:"particle_ms"`
	AnimationMs int `yaml:"animation_ms"`
}

// ScoreConfig defines milestones and passive scoring.
type ScoreConfig struct {
	MilestoneInterval int      `yaml:"milestone_interval"`
	MessageMs         int      `yaml:"message_ms"`
	Messages          []string `yaml:"messages"`
	PassiveIntervalMs int      `yaml:"passive_interval_ms"` // 0 disables passive score
	PassivePoints     int      `yaml:"passive_points"`
}

// ParticleConfig defines feedback bursts.
type ParticleConfig struct {
	Max          int     `yaml:"max"`
	Burst        int     `yaml:"burst"`
	SpecialBurst int     `yaml:"special_burst"`
	LifeTicks    int     `yaml:"life_ticks"`
	Speed        float64 `yaml:"speed"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to chaser speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// Validate reports configuration values the simulation cannot run with.
func (c AttractConfig) Validate() error {
	var errs []error
	if c.Arena.Max-c.Arena.Min <= 2*c.Arena.Margin {
		errs = append(errs, fmt.Errorf("arena: max-min must exceed 2*margin"))
	}
	if c.Obstacles.MinCount < 0 || c.Obstacles.MaxCount < c.Obstacles.MinCount {
		errs = append(errs, fmt.Errorf("obstacles: need 0 <= min_count <= max_count"))
	}
	if c.Obstacles.MaxSize < c.Obstacles.MinSize {
		errs = append(errs, fmt.Errorf("obstacles: max_size < min_size"))
	}
	if c.Targets.Cap < 0 || c.Targets.Initial > c.Targets.Cap {
		errs = append(errs, fmt.Errorf("targets: initial must not exceed cap"))
	}
	if c.Chasers.ModeMaxTicks < c.Chasers.ModeMinTicks || c.Chasers.ModeMinTicks <= 0 {
		errs = append(errs, fmt.Errorf("chasers: need 0 < mode_min_ticks <= mode_max_ticks"))
	}
	if c.Pathfinder.GridSize <= 0 || c.Pathfinder.MaxIterations <= 0 {
		errs = append(errs, fmt.Errorf("pathfinder: grid_size and max_iterations must be positive"))
	}
	if c.Pathfinder.CacheBypass < 0 || c.Pathfinder.CacheBypass > 1 {
		errs = append(errs, fmt.Errorf("pathfinder: cache_bypass must be within [0, 1]"))
	}
	t := c.Timing
	if t.ChaserMs <= 0 || t.SeekerMs <= 0 || t.CollisionMs <= 0 || t.ParticleMs <= 0 || t.AnimationMs <= 0 {
		errs = append(errs, fmt.Errorf("timing: all loop periods must be positive"))
	}
	if c.Power.DurationSecs <= 0 {
		errs = append(errs, fmt.Errorf("power: duration_secs must be positive"))
	}
	if c.Score.MilestoneInterval <= 0 {
		errs = append(errs, fmt.Errorf("score: milestone_interval must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid attract config: %w", err)
	}
	return nil
}
