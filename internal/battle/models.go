package battle

import (
	"time"

	"gorm.io/gorm"
)

// BattleStatus is a string alias for a battle's lifecycle state. Using a
// dedicated type instead of plain string makes code safer and self-documenting.
type BattleStatus string

const (
	StatusWaiting    BattleStatus = "waiting"
	StatusInProgress BattleStatus = "in_progress"
	StatusCompleted  BattleStatus = "completed"
	StatusCancelled  BattleStatus = "cancelled"
)

// Terminal reports whether the status is one of the two end states. A battle
// in a terminal status is immutable apart from settlement bookkeeping.
func (s BattleStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Battle is the durable session record for one match: who plays, how the
// match can be joined, and where it is in its lifecycle. The mutable per-turn
// state lives in the separate versioned StateDoc document.
type Battle struct {
	gorm.Model
	JoinCode string `json:"join_code" gorm:"uniqueIndex"`
	Category string `json:"category"`
	Private  bool   `json:"private"`
	EntryFee int    `json:"entry_fee"`

	InitiatorEmail   string `json:"initiator_email"`
	InitiatorName    string `json:"initiator_name"`
	ParticipantEmail string `json:"participant_email"`
	ParticipantName  string `json:"participant_name"`

	Status  BattleStatus `json:"status"`
	// Winner holds the winning player's email once Completed. Empty on a
	// draw or a cancelled battle.
	Winner  string `json:"winner"`
	Message string `json:"message"`

	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	ActionDeadline time.Time `json:"action_deadline"`

	// StatsSettled guards settlement idempotence: profile deltas and roster
	// release run at most once per battle.
	StatsSettled bool `json:"-"`

	// Timeout-scanner claim bookkeeping (see storage.ClaimTimedOutBattleIDs).
	ClaimedBy      string    `json:"-"`
	ClaimExpiresAt time.Time `json:"-"`
}

// TableName keeps the persisted table as `battle_sessions`.
func (Battle) TableName() string { return "battle_sessions" }

// HasParticipant reports whether the given email is one of the two players.
func (b *Battle) HasParticipant(email string) bool {
	return email != "" && (b.InitiatorEmail == email || b.ParticipantEmail == email)
}

// OpponentOf returns the other player's email, or "" when email is not a
// participant or no second player has joined yet.
func (b *Battle) OpponentOf(email string) string {
	switch email {
	case b.InitiatorEmail:
		return b.ParticipantEmail
	case b.ParticipantEmail:
		return b.InitiatorEmail
	}
	return ""
}

// Wine is a collectible entity from the cellar (collection) subsystem. The
// engine treats it as a read-only reference: ownership and the six base
// attributes feed battle snapshots, and InBattle is the exclusive-commit flag
// cleared only by settlement.
type Wine struct {
	gorm.Model
	OwnerEmail string `json:"owner_email" gorm:"index"`
	Name       string `json:"name"`
	// Category is the wine type (e.g. red, white, sparkling) used by the
	// type-effectiveness chart.
	Category string `json:"category"`
	Level    int    `json:"level"`

	Intensity  int `json:"intensity"`
	Structure  int `json:"structure"`
	Complexity int `json:"complexity"`
	Longevity  int `json:"longevity"`
	Rarity     int `json:"rarity"`
	Terroir    int `json:"terroir"`

	// InBattle marks the wine as exclusively committed to an active battle.
	// A committed wine cannot join another battle, trade, or listing.
	InBattle bool `json:"in_battle"`
}

// TableName keeps the persisted table as `cellar_wines`.
func (Wine) TableName() string { return "cellar_wines" }

// Total sums the six base attributes. The total serves as the wine's maximum
// hit points when it enters battle.
func (w *Wine) Total() int {
	return w.Intensity + w.Structure + w.Complexity + w.Longevity + w.Rarity + w.Terroir
}

// Move describes one attack or technique a player may use during a turn.
// Moves are configured in the server config file, not persisted.
type Move struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	// Power 0 marks a non-damaging move.
	Power    int    `json:"power"`
	Accuracy int    `json:"accuracy"`
	Priority int    `json:"priority"`
	Effect   string `json:"effect"`
}

// Damaging reports whether the move deals hit-point damage.
func (m Move) Damaging() bool { return m.Power > 0 }

// MoveSet indexes configured moves by name.
type MoveSet map[string]Move

// Profile stores unique player identity and aggregate battle statistics.
type Profile struct {
	gorm.Model
	Email      string `json:"email" gorm:"uniqueIndex"`
	Name       string `json:"name"`
	Rating     int    `json:"rating"`
	Experience int    `json:"experience"`

	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Forfeits    int `json:"forfeits"`
	GamesPlayed int `json:"games_played"`
}

// TableName unifies the global profile table name as "player_profiles".
func (Profile) TableName() string { return "player_profiles" }

// OutcomeDelta is the statistics-ledger payload applied to one player's
// profile during settlement.
type OutcomeDelta struct {
	ExperienceDelta  int
	RatingDelta      int
	WinIncrement     int
	LossIncrement    int
	ForfeitIncrement int
}
