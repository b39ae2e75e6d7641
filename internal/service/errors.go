package service

import (
	"errors"

	"github.com/ericogr/vino-arena/internal/storage"
)

// Validation errors: always recoverable, surfaced unchanged, no mutation
// occurs when any of them is returned.
var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrNotParticipant      = errors.New("player not in battle")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrWineNotOwned        = errors.New("wine not in your committed roster")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrMalformedAction     = errors.New("malformed action")
)

// Lifecycle errors.
var (
	ErrInvalidRoster     = errors.New("invalid roster")
	ErrBattleNotJoinable = errors.New("battle cannot be joined")
	ErrCancelNotAllowed  = errors.New("battle can only be cancelled before it starts")
)

// ErrSettlement wraps a failure inside the atomic settlement transaction.
// The session stays in its pre-settlement terminal state pending retry.
var ErrSettlement = errors.New("settlement failed")

// Persistence sentinels re-exported so callers match on one package.
// ErrConflict means the caller's view was stale: reload and re-validate,
// never blind-retry the same mutation.
var (
	ErrConflict      = storage.ErrConflict
	ErrWineCommitted = storage.ErrWineCommitted
)
