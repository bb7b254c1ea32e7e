package config

import (
	_ "embed"
)

//go:embed defaults/attract.yaml
var defaultAttractYAML []byte

// DefaultAttractConfig returns the built-in attract configuration.
// It mirrors defaults/attract.yaml and is used when the embedded file cannot be parsed.
func DefaultAttractConfig() AttractConfig {
	return AttractConfig{
		Arena: ArenaConfig{
			Min:         0,
			Max:         100,
			Margin:      5,
			AgentMargin: 0.5,
			SpawnMargin: 3,
		},
		Obstacles: ObstacleConfig{
			MinCount:          4,
			MaxCount:          7,
			MinSize:           6,
			MaxSize:           14,
			PlacementAttempts: 50,
			Gap:               5,
			CenterZoneRadius:  12,
			CornerZoneRadius:  10,
			CornerInset:       10,
		},
		Targets: TargetConfig{
			Initial:         8,
			Cap:             12,
			SpawnIntervalMs: 2000,
			SpecialChance:   0.1,
			PickupRadius:    4,
			Points:          10,
			SpecialPoints:   50,
		},
		Chasers: ChaserConfig{
			Count:          4,
			PickupRadius:   3,
			Points:         200,
			RespawnDelayMs: 3000,
			Speeds: PersonalitySpeeds{
				Aggressive: 0.9,
				Smart:      0.8,
				Random:     0.7,
				Ambusher:   0.85,
			},
			ScaredMultiplier: 0.5,
			Jitter:           0.1,
			ModeMinTicks:     40,
			ModeMaxTicks:     120,
			TurnChance:       0.05,
			EngageDistance:   60,
			AmbushLookahead:  15,
			FleeRadius:       30,
		},
		Seeker: SeekerConfig{
			Speed:          1.2,
			ArrivalRadius:  2,
			WarningRadius:  20,
			StuckEpsilon:   0.01,
			StuckThreshold: 10,
			ReplanChance:   0.05,
			SpecialWeight:  0.5,
			ChaserWeight:   0.8,
		},
		Power: PowerConfig{
			DurationSecs: 10,
		},
		Pathfinder: PathfinderConfig{
			GridSize:       5,
			MaxIterations:  50,
			CacheSize:      100,
			CacheBypass:    0.3,
			AvoidRadius:    8,
			GoalFactor:     2,
			SmoothWindow:   3,
			ObstacleMargin: 2,
		},
		Timing: TimingConfig{
			ChaserMs:    50,
			SeekerMs:    50,
			CollisionMs: 100,
			ParticleMs:  50,
			AnimationMs: 150,
		},
		Score: ScoreConfig{
			MilestoneInterval: 300,
			MessageMs:         3000,
			Messages: []string{
				"Fresh out of the oven!",
				"Sweet streak!",
				"Baker's dozen!",
				"Icing on the cake!",
				"Sugar rush!",
			},
		},
		Particles: ParticleConfig{
			Max:          256,
			Burst:        8,
			SpecialBurst: 16,
			LifeTicks:    20,
			Speed:        1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.3,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultAttractYAML
}
