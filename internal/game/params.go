package game

import (
	"errors"
	"fmt"
	"time"
)

// Table geometry and physics constants for 8-ball.
// Geometry is fixed; everything in Params can be tuned for tests and via runtime config.

const (
	NumBalls  = 16 // 0=cue, 1-7=solids, 8=eight, 9-15=stripes
	CueBall   = 0
	EightBall = 8

	TableX       = 210.0
	TableY       = 250.0
	TableWidth   = 1500.0
	TableHeight  = 750.0
	CushionWidth = 60.0

	MidPocketJitter = 5.0
	KindBallCount   = 7 // balls per assignable kind
)

// Params holds the tunable physics and rules constants.
type Params struct {
	BallRadius         float64       `yaml:"ball_radius" json:"ball_radius"`
	PocketRadius       float64       `yaml:"pocket_radius" json:"pocket_radius"`
	BallRestitution    float64       `yaml:"ball_restitution" json:"ball_restitution"`
	CushionRestitution float64       `yaml:"cushion_restitution" json:"cushion_restitution"`
	Friction           float64       `yaml:"friction" json:"friction"`
	StopSpeedSq        float64       `yaml:"stop_speed_sq" json:"stop_speed_sq"`
	MotionThreshold    float64       `yaml:"motion_threshold" json:"motion_threshold"`
	SubSteps           int           `yaml:"sub_steps" json:"sub_steps"`
	MaxShotPower       float64       `yaml:"max_shot_power" json:"max_shot_power"`
	ShotPowerScale     float64       `yaml:"shot_power_scale" json:"shot_power_scale"`
	TickRate           float64       `yaml:"tick_rate" json:"tick_rate"`
	MaxDtScale         float64       `yaml:"max_dt_scale" json:"max_dt_scale"`
	MinSeparation      float64       `yaml:"min_separation" json:"min_separation"`
	MinAimDistance     float64       `yaml:"min_aim_distance" json:"min_aim_distance"`
	GameOverDelay      time.Duration `yaml:"game_over_delay" json:"game_over_delay"`
}

// DefaultParams returns the stock table constants.
func DefaultParams() Params {
	return Params{
		BallRadius:         20,
		PocketRadius:       35,
		BallRestitution:    0.96,
		CushionRestitution: 0.75,
		Friction:           0.991,
		StopSpeedSq:        0.01,
		MotionThreshold:    0.2,
		SubSteps:           8,
		MaxShotPower:       30,
		ShotPowerScale:     0.15,
		TickRate:           120,
		MaxDtScale:         4,
		MinSeparation:      0.001,
		MinAimDistance:     0.1,
		GameOverDelay:      4 * time.Second,
	}
}

// TickInterval is the reference frame duration dt_scale is normalized against.
func (p Params) TickInterval() time.Duration {
	return time.Duration(float64(time.Second) / p.TickRate)
}

var ErrInvalidParams = errors.New("invalid physics params")

// Validate rejects parameter sets that would break the solver's invariants.
func (p Params) Validate() error {
	switch {
	case p.BallRadius <= 0:
		return fmt.Errorf("%w: ball_radius must be positive", ErrInvalidParams)
	case p.PocketRadius <= 0:
		return fmt.Errorf("%w: pocket_radius must be positive", ErrInvalidParams)
	case p.BallRestitution < 0 || p.BallRestitution > 1:
		return fmt.Errorf("%w: ball_restitution must be within [0, 1]", ErrInvalidParams)
	case p.CushionRestitution < 0 || p.CushionRestitution > 1:
		return fmt.Errorf("%w: cushion_restitution must be within [0, 1]", ErrInvalidParams)
	case p.Friction <= 0 || p.Friction > 1:
		return fmt.Errorf("%w: friction must be within (0, 1]", ErrInvalidParams)
	case p.StopSpeedSq < 0:
		return fmt.Errorf("%w: stop_speed_sq must not be negative", ErrInvalidParams)
	case p.MotionThreshold < 0:
		return fmt.Errorf("%w: motion_threshold must not be negative", ErrInvalidParams)
	case p.SubSteps < 1:
		return fmt.Errorf("%w: sub_steps must be at least 1", ErrInvalidParams)
	case p.MaxShotPower <= 0 || p.ShotPowerScale <= 0:
		return fmt.Errorf("%w: shot power settings must be positive", ErrInvalidParams)
	case p.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalidParams)
	case p.MaxDtScale <= 0:
		return fmt.Errorf("%w: max_dt_scale must be positive", ErrInvalidParams)
	case p.MinSeparation <= 0 || p.MinAimDistance <= 0:
		return fmt.Errorf("%w: fallback distances must be positive", ErrInvalidParams)
	case p.GameOverDelay < 0:
		return fmt.Errorf("%w: game_over_delay must not be negative", ErrInvalidParams)
	}
	return nil
}
