package service

import (
	"fmt"
	"strings"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/engine"
)

// Validate checks actor identity, turn ownership, and action legality
// against the battle session and state document. It is a pure check: no
// mutation happens here, and on success the returned ValidatedAction carries
// every reference resolved for the engine.
func Validate(b *battle.Battle, st *battle.StateDoc, userEmail string, a battle.Action, moves battle.MoveSet) (engine.ValidatedAction, error) {
	var v engine.ValidatedAction

	if !b.HasParticipant(userEmail) {
		return v, ErrNotParticipant
	}
	if b.Status != battle.StatusInProgress {
		return v, ErrBattleNotInProgress
	}
	if st.TurnHolder != userEmail {
		return v, ErrNotYourTurn
	}
	if !battle.KnownKind(a.Kind) {
		return v, fmt.Errorf("%w: unknown kind %q", ErrMalformedAction, a.Kind)
	}

	own, opp, ok := st.SideOf(userEmail)
	if !ok {
		return v, ErrNotParticipant
	}

	v.Actor = userEmail
	v.Action = a

	switch a.Kind {
	case battle.ActionMove:
		// The move set is keyed lowercase; accept the configured display
		// casing from clients.
		mv, ok := moves[strings.ToLower(strings.TrimSpace(a.Move))]
		if !ok {
			return v, fmt.Errorf("%w: unknown move %q", ErrMalformedAction, a.Move)
		}
		actor := own.Find(a.WineID)
		if actor == nil {
			return v, ErrWineNotOwned
		}
		if actor.Fainted {
			return v, fmt.Errorf("%w: acting wine has fainted", ErrMalformedAction)
		}
		if own.Active() == nil || own.Active().WineID != actor.WineID {
			return v, fmt.Errorf("%w: acting wine is not fielded", ErrMalformedAction)
		}
		v.Move = mv
		v.ActingWine = actor
		if mv.Damaging() {
			target := opp.Find(a.TargetID)
			if target == nil {
				return v, fmt.Errorf("%w: a damaging move must name an opposing wine", ErrMalformedAction)
			}
			if target.Fainted {
				return v, fmt.Errorf("%w: target wine has fainted", ErrMalformedAction)
			}
			v.Target = target
		}

	case battle.ActionAbility, battle.ActionItem:
		if a.Name == "" {
			return v, fmt.Errorf("%w: %s requires a name", ErrMalformedAction, a.Kind)
		}
		actor := own.Find(a.WineID)
		if actor == nil {
			return v, ErrWineNotOwned
		}
		if actor.Fainted {
			return v, fmt.Errorf("%w: acting wine has fainted", ErrMalformedAction)
		}
		v.ActingWine = actor

	case battle.ActionSwitch:
		next := own.Find(a.WineID)
		if next == nil {
			return v, ErrWineNotOwned
		}
		if next.Fainted {
			return v, fmt.Errorf("%w: cannot field a fainted wine", ErrMalformedAction)
		}
		if active := own.Active(); active != nil && active.WineID == next.WineID {
			return v, fmt.Errorf("%w: wine is already fielded", ErrMalformedAction)
		}
		v.SwitchTo = next

	case battle.ActionForfeit:
		// always legal for the turn holder
	}

	return v, nil
}
