package tuning

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/models"
)

// GetAll returns every runtime_config row.
func GetAll(db *sqlx.DB) ([]models.RuntimeConfig, error) {
	var rows []models.RuntimeConfig
	err := db.Select(&rows, `
		SELECT key, value, value_type, description, updated_at
		FROM runtime_config
		ORDER BY key
	`)
	return rows, err
}

// Set validates value against the row's type, checks that base with every
// stored override plus this one still validates, and stores it.
func Set(db *sqlx.DB, base game.Params, key, value string) error {
	rows, err := GetAll(db)
	if err != nil {
		return err
	}
	if err := checkSet(base, rows, key, value); err != nil {
		return err
	}

	_, err = db.Exec(`UPDATE runtime_config SET value=$1, updated_at=NOW() WHERE key=$2`, value, key)
	return err
}

func checkSet(base game.Params, rows []models.RuntimeConfig, key, value string) error {
	i := slices.IndexFunc(rows, func(c models.RuntimeConfig) bool { return c.Key == key })
	if i < 0 {
		return fmt.Errorf("config key not found: %s", key)
	}
	if err := checkType(rows[i].ValueType, value); err != nil {
		return err
	}

	next := slices.Clone(rows)
	next[i].Value = value
	_, err := Apply(base, next)
	return err
}

func checkType(valueType, value string) error {
	switch valueType {
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
	case "float":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("invalid float value: %s", value)
		}
	case "bool":
		if value != "true" && value != "false" {
			return fmt.Errorf("invalid boolean value: %s (must be 'true' or 'false')", value)
		}
	}
	return nil
}

// Load reads runtime_config and applies it on top of base.
func Load(db *sqlx.DB, base game.Params) (game.Params, error) {
	rows, err := GetAll(db)
	if err != nil {
		return base, err
	}
	return Apply(base, rows)
}

// Apply overlays rows onto base. Unknown keys and unparsable values are
// skipped with a warning; the merged result must still validate.
func Apply(base game.Params, rows []models.RuntimeConfig) (game.Params, error) {
	p := base
	applied := 0

	for _, c := range rows {
		ok := true
		switch c.Key {
		case "ball_radius":
			ok = setFloat(&p.BallRadius, c.Value)
		case "pocket_radius":
			ok = setFloat(&p.PocketRadius, c.Value)
		case "ball_restitution":
			ok = setFloat(&p.BallRestitution, c.Value)
		case "cushion_restitution":
			ok = setFloat(&p.CushionRestitution, c.Value)
		case "friction":
			ok = setFloat(&p.Friction, c.Value)
		case "stop_speed_sq":
			ok = setFloat(&p.StopSpeedSq, c.Value)
		case "motion_threshold":
			ok = setFloat(&p.MotionThreshold, c.Value)
		case "max_shot_power":
			ok = setFloat(&p.MaxShotPower, c.Value)
		case "shot_power_scale":
			ok = setFloat(&p.ShotPowerScale, c.Value)
		case "max_dt_scale":
			ok = setFloat(&p.MaxDtScale, c.Value)
		case "tick_rate":
			ok = setFloat(&p.TickRate, c.Value)
		case "sub_steps":
			ok = setInt(&p.SubSteps, c.Value)
		case "game_over_delay_ms":
			var ms int
			if ok = setInt(&ms, c.Value); ok {
				p.GameOverDelay = time.Duration(ms) * time.Millisecond
			}
		default:
			log.Warnf("[TUNING] Unknown runtime config key %q ignored", c.Key)
			continue
		}
		if !ok {
			log.Warnf("[TUNING] Bad value %q for %s ignored", c.Value, c.Key)
			continue
		}
		applied++
	}

	if err := p.Validate(); err != nil {
		return base, fmt.Errorf("runtime config rejected: %w", err)
	}

	log.Infof("[TUNING] Applied %d runtime config overrides from database", applied)
	return p, nil
}

func setFloat(dst *float64, value string) bool {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	*dst = v
	return true
}

func setInt(dst *int, value string) bool {
	v, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	*dst = v
	return true
}
