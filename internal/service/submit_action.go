package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/engine"
	"github.com/ericogr/vino-arena/internal/storage"
)

// Config bundles the static battle tuning shared by every request: the
// configured move set, the type-effectiveness chart, the settlement rules,
// the secondary-effect hook, and the turn-timeout policy (0 disables it).
type Config struct {
	Moves       battle.MoveSet
	Chart       engine.TypeChart
	Rules       battle.RatingRules
	Hook        engine.EffectHook
	TurnTimeout time.Duration
}

// ActionRepo is the minimal repository interface required by SubmitAction.
// Using a small interface simplifies testing.
type ActionRepo interface {
	LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error)
	CommitBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int) error
	SettleBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int, deltas map[string]battle.OutcomeDelta) error
}

// SubmitAction is the single mutating entry point of the battle core. Each
// call rehydrates the session and state from the store, validates the
// action, resolves it, advances the turn, and commits with compare-and-swap
// keyed on the turn number at load time. A concurrent submission for the
// same turn loses the swap and surfaces ErrConflict; the client must reload
// and retry with a fresh view.
func SubmitAction(repo ActionRepo, rng engine.Rand, cfg Config, battleID uint, userEmail string, a battle.Action) (*battle.StateDoc, engine.Outcome, error) {
	b, st, err := repo.LoadBattle(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, engine.Outcome{}, ErrBattleNotFound
		}
		return nil, engine.Outcome{}, err
	}
	expectedTurn := st.TurnNumber

	v, err := Validate(b, st, userEmail, a, cfg.Moves)
	if err != nil {
		return nil, engine.Outcome{}, err
	}

	out := engine.Resolve(rng, cfg.Chart, cfg.Hook, v, st)
	verdict := engine.Advance(st, out)

	if verdict.Terminal() {
		finishBattle(b, verdict)
		deltas := SettlementDeltas(b, verdict, out.Forfeit, cfg.Rules)
		if err := repo.SettleBattle(b, st, expectedTurn, deltas); err != nil {
			if errors.Is(err, storage.ErrConflict) {
				return nil, engine.Outcome{}, ErrConflict
			}
			return nil, engine.Outcome{}, fmt.Errorf("%w: %v", ErrSettlement, err)
		}
		return st, out, nil
	}

	if cfg.TurnTimeout > 0 {
		b.ActionDeadline = time.Now().Add(cfg.TurnTimeout)
	}
	if err := repo.CommitBattle(b, st, expectedTurn); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, engine.Outcome{}, ErrConflict
		}
		return nil, engine.Outcome{}, err
	}
	return st, out, nil
}

// finishBattle marks the session terminal. The transition to Completed
// happens exactly once; settlement bookkeeping enforces idempotence.
func finishBattle(b *battle.Battle, verdict engine.Verdict) {
	b.Status = battle.StatusCompleted
	b.Winner = verdict.Winner
	b.EndedAt = time.Now()
	b.ActionDeadline = time.Time{}
	switch verdict.Result {
	case engine.ResultDraw:
		b.Message = "Battle ended in a draw"
	case engine.ResultWin:
		b.Message = "Victory for " + verdict.Winner
	case engine.ResultContinue:
		// unreachable: callers only finish terminal verdicts
	}
}
