package battle

// RatingRules configures the settlement deltas applied to player profiles
// when a battle completes. Gains are capped, penalties are bounded, and the
// storage layer floors ratings at zero.
type RatingRules struct {
	WinExperience  int `json:"win_experience"`
	LossExperience int `json:"loss_experience"`
	DrawExperience int `json:"draw_experience"`
	// MaxExperienceGain caps any single experience credit.
	MaxExperienceGain int `json:"max_experience_gain"`

	WinRatingGain int `json:"win_rating_gain"`
	// MaxRatingGain caps any single rating credit.
	MaxRatingGain     int `json:"max_rating_gain"`
	LossRatingPenalty int `json:"loss_rating_penalty"`
	// ForfeitRatingPenalty must stay below LossRatingPenalty: quitting
	// costs less rating than losing outright.
	ForfeitRatingPenalty int `json:"forfeit_rating_penalty"`
}

// DefaultRatingRules returns the stock settlement tuning.
func DefaultRatingRules() RatingRules {
	return RatingRules{
		WinExperience:        100,
		LossExperience:       20,
		DrawExperience:       40,
		MaxExperienceGain:    150,
		WinRatingGain:        25,
		MaxRatingGain:        40,
		LossRatingPenalty:    25,
		ForfeitRatingPenalty: 10,
	}
}
