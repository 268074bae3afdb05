package game

import "time"

// Rules holds the tunables of a game.
type Rules struct {
	SpawnX, SpawnY int
	// SpawnShifts is how many one-column left shifts are tried when the
	// spawn position is blocked.
	SpawnShifts int

	PointsPerRow int

	InitialFallPeriod time.Duration
	MinFallPeriod     time.Duration
	FallPeriodStep    time.Duration
	// SpeedUpEvery is the score interval at which the fall period shrinks.
	SpeedUpEvery int
}

func DefaultRules() Rules {
	return Rules{
		SpawnX:            4,
		SpawnY:            0,
		SpawnShifts:       3,
		PointsPerRow:      100,
		InitialFallPeriod: 1000 * time.Millisecond,
		MinFallPeriod:     500 * time.Millisecond,
		FallPeriodStep:    150 * time.Millisecond,
		SpeedUpEvery:      500,
	}
}
