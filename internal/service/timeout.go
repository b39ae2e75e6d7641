package service

import (
	"errors"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/engine"
	"github.com/ericogr/vino-arena/internal/logging"
)

// HandleTimedOutBattle applies the turn-timeout policy to one claimed
// battle: when the policy is enabled and the action deadline has passed, the
// idle turn holder forfeits and settlement runs with the forfeit penalty.
// With the policy disabled this is a no-op.
func HandleTimedOutBattle(repo ActionRepo, rng engine.Rand, cfg Config, battleID uint, now time.Time) error {
	if cfg.TurnTimeout <= 0 {
		return nil
	}

	b, st, err := repo.LoadBattle(battleID)
	if err != nil {
		return err
	}
	if b.Status != battle.StatusInProgress || b.ActionDeadline.IsZero() || now.Before(b.ActionDeadline) {
		return nil
	}

	holder := st.TurnHolder
	logging.Info("auto-forfeiting idle turn holder", logging.Fields{"battle_id": battleID, "holder": holder})
	_, _, err = SubmitAction(repo, rng, cfg, battleID, holder, battle.Action{Kind: battle.ActionForfeit})
	if errors.Is(err, ErrConflict) {
		// An action landed between the claim and the forfeit; the battle
		// is live again.
		return nil
	}
	return err
}
