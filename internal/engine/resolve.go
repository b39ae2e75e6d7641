package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/vino-arena/internal/battle"
)

// ValidatedAction is the validator's output: the submitted action with every
// reference resolved against the battle-state document. Resolution trusts it
// completely and performs no further checks.
type ValidatedAction struct {
	Actor  string
	Action battle.Action

	// Move fields, set for battle.ActionMove.
	Move       battle.Move
	ActingWine *battle.WineState
	Target     *battle.WineState

	// SwitchTo is set for battle.ActionSwitch.
	SwitchTo *battle.WineState
}

// Outcome describes the resolved result of one action.
type Outcome struct {
	Kind          battle.ActionKind `json:"kind"`
	Move          string            `json:"move,omitempty"`
	Miss          bool              `json:"miss"`
	Critical      bool              `json:"critical"`
	Effectiveness float64           `json:"effectiveness,omitempty"`
	Damage        int               `json:"damage"`
	TargetID      uint              `json:"target_id,omitempty"`
	TargetFainted bool              `json:"target_fainted"`
	Forfeit       bool              `json:"forfeit"`
	Summary       string            `json:"summary"`
}

// EffectHook resolves ability and item actions. Secondary-effect modeling
// (stat modifiers, status infliction) is a pluggable extension point: the
// hook returns the outcome text recorded in the battle log.
type EffectHook func(v ValidatedAction, st *battle.StateDoc) string

// DefaultEffectHook produces the descriptive log-entry outcome without
// applying stat or status changes.
func DefaultEffectHook(v ValidatedAction, st *battle.StateDoc) string {
	switch v.Action.Kind {
	case battle.ActionAbility:
		return fmt.Sprintf("%s's %s invokes %s", v.Actor, v.ActingWine.Name, v.Action.Name)
	case battle.ActionItem:
		return fmt.Sprintf("%s uses %s on %s", v.Actor, v.Action.Name, v.ActingWine.Name)
	case battle.ActionMove, battle.ActionSwitch, battle.ActionForfeit:
		return ""
	}
	return ""
}

// Resolve computes the outcome of a validated action and applies it to the
// state document. Persistence is the caller's responsibility; the caller owns
// the document copy. Exactly one log entry is appended per call.
func Resolve(rng Rand, chart TypeChart, hook EffectHook, v ValidatedAction, st *battle.StateDoc) Outcome {
	if hook == nil {
		hook = DefaultEffectHook
	}

	out := Outcome{Kind: v.Action.Kind}

	switch v.Action.Kind {
	case battle.ActionMove:
		resolveMove(rng, chart, v, &out)
	case battle.ActionAbility, battle.ActionItem:
		out.Summary = hook(v, st)
	case battle.ActionSwitch:
		own, _, _ := st.SideOf(v.Actor)
		for i := range own.Roster {
			if own.Roster[i].WineID == v.SwitchTo.WineID {
				own.ActiveIdx = i
				break
			}
		}
		out.Summary = fmt.Sprintf("%s fields %s", v.Actor, v.SwitchTo.Name)
	case battle.ActionForfeit:
		out.Forfeit = true
		out.Summary = fmt.Sprintf("%s forfeits the battle", v.Actor)
	}

	st.Append(battle.LogEntry{
		ID:        uuid.NewString(),
		Turn:      st.TurnNumber + 1,
		Actor:     v.Actor,
		Kind:      v.Action.Kind,
		Outcome:   out.Summary,
		Timestamp: time.Now().UTC(),
	})
	return out
}

func resolveMove(rng Rand, chart TypeChart, v ValidatedAction, out *Outcome) {
	out.Move = v.Move.Name

	roll, miss := rollAccuracy(rng, v.Move.Accuracy)
	if miss {
		out.Miss = true
		out.Summary = fmt.Sprintf("%s's %s misses with %s (roll %.0f vs accuracy %d)",
			v.Actor, v.ActingWine.Name, v.Move.Name, roll, v.Move.Accuracy)
		return
	}

	if !v.Move.Damaging() {
		out.Summary = fmt.Sprintf("%s's %s uses %s", v.Actor, v.ActingWine.Name, v.Move.Name)
		return
	}

	eff := chart.Multiplier(v.Move.Category, v.Target.Category)
	crit := rollCritical(rng, strings.Contains(v.Move.Effect, "critical"))
	variance := rollVariance(rng)

	dmg := Damage(v.ActingWine.Level, v.ActingWine.Intensity, v.Target.Structure,
		v.Move.Power, eff, crit, variance)
	v.Target.ApplyDamage(dmg)

	out.Effectiveness = eff
	out.Critical = crit
	out.Damage = dmg
	out.TargetID = v.Target.WineID
	out.TargetFainted = v.Target.Fainted

	parts := []string{fmt.Sprintf("%s's %s hits %s with %s for %d damage",
		v.Actor, v.ActingWine.Name, v.Target.Name, v.Move.Name, dmg)}
	if crit {
		parts = append(parts, "critical hit")
	}
	switch {
	case eff > 1.0:
		parts = append(parts, "it's super effective")
	case eff < 1.0:
		parts = append(parts, "it's not very effective")
	}
	if v.Target.Fainted {
		parts = append(parts, fmt.Sprintf("%s fainted", v.Target.Name))
	}
	out.Summary = strings.Join(parts, "; ")
}
