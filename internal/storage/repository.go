package storage

import (
	"errors"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
)

var (
	// ErrNotFound signals a missing battle, state document, wine, or
	// profile.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals that a compare-and-swap commit lost: the caller's
	// view of the battle state was stale and must be reloaded.
	ErrConflict = errors.New("stale battle state")
	// ErrWineCommitted signals that a wine is already exclusively committed
	// to an active battle.
	ErrWineCommitted = errors.New("wine already committed to a battle")
)

type Repository interface {
	// Cellar (collection subsystem) lookup, read-only to the engine.
	GetWine(id uint) (*battle.Wine, error)
	GetWinesByIDs(ids []uint) ([]battle.Wine, error)
	ListWinesByOwner(email string) ([]battle.Wine, error)
	// GrantStarterCellar copies the configured seed wines to a player who
	// owns none yet.
	GrantStarterCellar(email string) error

	// Battle session and state-document persistence. LoadBattle rehydrates
	// both; CommitBattle applies the new document with compare-and-swap
	// keyed on the expected turn number and returns ErrConflict when the
	// caller's view was stale.
	CreateBattle(b *battle.Battle, st *battle.StateDoc) error
	UpdateBattle(b *battle.Battle) error
	LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error)
	FindBattleByJoinCode(code string) (*battle.Battle, error)
	ListOpenBattles() ([]battle.Battle, error)
	CommitBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int) error

	// Roster locking: wines committed to an active battle are exclusively
	// locked against any other battle, trade, or listing. Only settlement
	// (or a pre-start cancel) clears the lock.
	CommitWines(ids []uint, owner string) error
	ReleaseWines(ids []uint) error

	// SettleBattle runs the whole settlement as one transaction: terminal
	// session mark, profile deltas, roster release, and the final state
	// commit. Retry-safe; partial settlement is never observable.
	SettleBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int, deltas map[string]battle.OutcomeDelta) error
	// ApplyOutcome is the statistics-ledger entry point for one player.
	ApplyOutcome(email string, d battle.OutcomeDelta) error

	// Player profiles.
	UpsertProfile(email, name string) error
	GetProfile(email string) (*battle.Profile, error)
	TopProfiles(limit int) ([]battle.Profile, error)

	// ClaimTimedOutBattleIDs returns in-progress battles whose action
	// deadline passed, claiming them for workerID so concurrent scanners
	// do not double-handle a battle.
	ClaimTimedOutBattleIDs(now time.Time, limit int, claimTTL time.Duration, workerID string) ([]uint, error)
}
