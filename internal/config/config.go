package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/engine"
)

type moveEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Power    int    `json:"power"`
	Accuracy int    `json:"accuracy"`
	Priority int    `json:"priority"`
	Effect   string `json:"effect"`
}

type wineEntry struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	Level      int    `json:"level"`
	Intensity  int    `json:"intensity"`
	Structure  int    `json:"structure"`
	Complexity int    `json:"complexity"`
	Longevity  int    `json:"longevity"`
	Rarity     int    `json:"rarity"`
	Terroir    int    `json:"terroir"`
}

type ratingEntry struct {
	WinExperience        *int `json:"win_experience"`
	LossExperience       *int `json:"loss_experience"`
	DrawExperience       *int `json:"draw_experience"`
	MaxExperienceGain    *int `json:"max_experience_gain"`
	WinRatingGain        *int `json:"win_rating_gain"`
	MaxRatingGain        *int `json:"max_rating_gain"`
	LossRatingPenalty    *int `json:"loss_rating_penalty"`
	ForfeitRatingPenalty *int `json:"forfeit_rating_penalty"`
}

type rawConfig struct {
	MoveList  []moveEntry                   `json:"move_list"`
	TypeChart map[string]map[string]float64 `json:"type_chart"`
	WineList  []wineEntry                   `json:"wine_list"`
	Rating    *ratingEntry                  `json:"rating"`
	// Turn timeout in seconds; 0 disables the idle-turn forfeit scanner.
	TurnTimeoutSeconds int `json:"turn_timeout_seconds"`
	// How long a waiting battle stays listed as open, in seconds.
	OpenBattlesTTLSeconds int `json:"open_battles_ttl_seconds"`
	Server                *struct {
		Address string `json:"address"`
	} `json:"server"`
}

// LoadedConfig contains the move list, type chart, seed wines, rating rules
// and server address parsed from the JSON config file.
type LoadedConfig struct {
	Moves          battle.MoveSet
	Chart          engine.TypeChart
	SeedWines      []battle.Wine
	Rating         battle.RatingRules
	TurnTimeout    time.Duration
	OpenBattlesTTL time.Duration
	ServerAddress  string
}

// LoadConfig reads the configuration file at path. It requires the key
// `move_list` (snake_case); the other sections are optional and fall back
// to defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.MoveList) == 0 {
		return nil, fmt.Errorf("config file %s: move_list is empty (provide 'move_list' array)", path)
	}

	moves := make(battle.MoveSet, len(rc.MoveList))
	for _, m := range rc.MoveList {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("config file %s: move entry missing 'name'", path)
		}
		key := strings.ToLower(strings.TrimSpace(m.Name))
		if _, exists := moves[key]; exists {
			return nil, fmt.Errorf("config file %s: duplicate move name '%s'", path, m.Name)
		}
		if m.Accuracy < 0 || m.Accuracy > 100 {
			return nil, fmt.Errorf("config file %s: move '%s' accuracy must be in [0,100]", path, m.Name)
		}
		if m.Power < 0 {
			return nil, fmt.Errorf("config file %s: move '%s' power must be non-negative", path, m.Name)
		}
		moves[key] = battle.Move{
			Name:     m.Name,
			Category: strings.ToLower(strings.TrimSpace(m.Category)),
			Power:    m.Power,
			Accuracy: m.Accuracy,
			Priority: m.Priority,
			Effect:   m.Effect,
		}
	}

	chart := engine.TypeChart(rc.TypeChart)
	if err := chart.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	wines := make([]battle.Wine, 0, len(rc.WineList))
	nameSet := make(map[string]struct{}, len(rc.WineList))
	for _, w := range rc.WineList {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("config file %s: wine entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(w.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate wine name '%s'", path, w.Name)
		}
		nameSet[ln] = struct{}{}
		if w.Level < 1 {
			return nil, fmt.Errorf("config file %s: wine '%s' level must be at least 1", path, w.Name)
		}
		wines = append(wines, battle.Wine{
			Name:       w.Name,
			Category:   strings.ToLower(strings.TrimSpace(w.Category)),
			Level:      w.Level,
			Intensity:  w.Intensity,
			Structure:  w.Structure,
			Complexity: w.Complexity,
			Longevity:  w.Longevity,
			Rarity:     w.Rarity,
			Terroir:    w.Terroir,
		})
	}

	rules := battle.DefaultRatingRules()
	if rc.Rating != nil {
		applyRatingOverrides(&rules, rc.Rating)
	}
	if err := validateRating(rules); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if rc.TurnTimeoutSeconds < 0 {
		return nil, fmt.Errorf("config file %s: turn_timeout_seconds must be non-negative", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	openTTL := 5 * time.Minute
	if rc.OpenBattlesTTLSeconds > 0 {
		openTTL = time.Duration(rc.OpenBattlesTTLSeconds) * time.Second
	}

	return &LoadedConfig{
		Moves:          moves,
		Chart:          chart,
		SeedWines:      wines,
		Rating:         rules,
		TurnTimeout:    time.Duration(rc.TurnTimeoutSeconds) * time.Second,
		OpenBattlesTTL: openTTL,
		ServerAddress:  addr,
	}, nil
}

func applyRatingOverrides(rules *battle.RatingRules, e *ratingEntry) {
	if e.WinExperience != nil {
		rules.WinExperience = *e.WinExperience
	}
	if e.LossExperience != nil {
		rules.LossExperience = *e.LossExperience
	}
	if e.DrawExperience != nil {
		rules.DrawExperience = *e.DrawExperience
	}
	if e.MaxExperienceGain != nil {
		rules.MaxExperienceGain = *e.MaxExperienceGain
	}
	if e.WinRatingGain != nil {
		rules.WinRatingGain = *e.WinRatingGain
	}
	if e.MaxRatingGain != nil {
		rules.MaxRatingGain = *e.MaxRatingGain
	}
	if e.LossRatingPenalty != nil {
		rules.LossRatingPenalty = *e.LossRatingPenalty
	}
	if e.ForfeitRatingPenalty != nil {
		rules.ForfeitRatingPenalty = *e.ForfeitRatingPenalty
	}
}

func validateRating(r battle.RatingRules) error {
	if r.WinExperience < 0 || r.LossExperience < 0 || r.DrawExperience < 0 {
		return fmt.Errorf("rating: experience values must be non-negative")
	}
	if r.MaxExperienceGain < 1 || r.MaxRatingGain < 1 {
		return fmt.Errorf("rating: caps must be at least 1")
	}
	if r.ForfeitRatingPenalty < 0 || r.LossRatingPenalty < 0 {
		return fmt.Errorf("rating: penalties must be non-negative")
	}
	if r.ForfeitRatingPenalty >= r.LossRatingPenalty {
		return fmt.Errorf("rating: forfeit_rating_penalty must be smaller than loss_rating_penalty")
	}
	return nil
}
