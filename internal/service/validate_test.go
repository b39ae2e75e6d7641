package service

import (
	"errors"
	"testing"

	"github.com/ericogr/vino-arena/internal/battle"
)

func validateMoves() battle.MoveSet {
	return battle.MoveSet{
		"tannic strike": {Name: "Tannic Strike", Category: "red", Power: 80, Accuracy: 100},
		"decant":        {Name: "Decant", Category: "white", Power: 0, Accuracy: 100},
	}
}

func validateFixture() (*battle.Battle, *battle.StateDoc) {
	b := &battle.Battle{
		InitiatorEmail:   "alice@example.com",
		ParticipantEmail: "bob@example.com",
		Status:           battle.StatusInProgress,
	}
	st := &battle.StateDoc{
		TurnNumber: 0,
		TurnHolder: "alice@example.com",
		Sides: [2]battle.Side{
			{Owner: "alice@example.com", Roster: []battle.WineState{
				{WineID: 1, Name: "Barolo", Category: "red", Level: 10, MaxHP: 100, CurrentHP: 100, Intensity: 70, Structure: 60},
				{WineID: 2, Name: "Chablis", Category: "white", Level: 8, MaxHP: 90, CurrentHP: 90, Intensity: 55, Structure: 50},
			}},
			{Owner: "bob@example.com", Roster: []battle.WineState{
				{WineID: 3, Name: "Port", Category: "fortified", Level: 12, MaxHP: 120, CurrentHP: 120, Intensity: 65, Structure: 80},
			}},
		},
	}
	return b, st
}

func TestValidateRejectsNonParticipant(t *testing.T) {
	b, st := validateFixture()
	_, err := Validate(b, st, "mallory@example.com", battle.Action{Kind: battle.ActionForfeit}, validateMoves())
	if !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
}

func TestValidateRejectsWhenNotInProgress(t *testing.T) {
	b, st := validateFixture()
	b.Status = battle.StatusWaiting
	_, err := Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionForfeit}, validateMoves())
	if !errors.Is(err, ErrBattleNotInProgress) {
		t.Fatalf("expected ErrBattleNotInProgress, got %v", err)
	}
}

func TestValidateRejectsOutOfTurn(t *testing.T) {
	b, st := validateFixture()
	_, err := Validate(b, st, "bob@example.com", battle.Action{Kind: battle.ActionForfeit}, validateMoves())
	if !errors.Is(err, ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestValidateRejectsUnknownKind(t *testing.T) {
	b, st := validateFixture()
	_, err := Validate(b, st, "alice@example.com", battle.Action{Kind: "dance"}, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateAcceptsDisplayCasedMove(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: " Tannic Strike ", TargetID: 3}
	v, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Move.Name != "Tannic Strike" {
		t.Fatalf("expected the configured move resolved, got %+v", v.Move)
	}
}

func TestValidateRejectsUnknownMove(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: "oak blast", TargetID: 3}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateRejectsFaintedActor(t *testing.T) {
	b, st := validateFixture()
	st.Sides[0].Roster[0].Fainted = true
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: "tannic strike", TargetID: 3}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateRejectsBenchedActor(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 2, Move: "tannic strike", TargetID: 3}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateDamagingMoveNeedsOpposingTarget(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: "tannic strike", TargetID: 99}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateRejectsFaintedTarget(t *testing.T) {
	b, st := validateFixture()
	st.Sides[1].Roster[0].Fainted = true
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: "tannic strike", TargetID: 3}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}
}

func TestValidateNonDamagingMoveNeedsNoTarget(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 1, Move: "decant"}
	v, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Target != nil {
		t.Fatalf("non-damaging move should not resolve a target")
	}
}

func TestValidateRejectsWineFromAnotherCellar(t *testing.T) {
	b, st := validateFixture()
	a := battle.Action{Kind: battle.ActionMove, WineID: 3, Move: "tannic strike", TargetID: 3}
	_, err := Validate(b, st, "alice@example.com", a, validateMoves())
	if !errors.Is(err, ErrWineNotOwned) {
		t.Fatalf("expected ErrWineNotOwned, got %v", err)
	}
}

func TestValidateSwitchRejectsFaintedOrFielded(t *testing.T) {
	b, st := validateFixture()

	_, err := Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionSwitch, WineID: 1}, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction for already-fielded wine, got %v", err)
	}

	st.Sides[0].Roster[1].Fainted = true
	_, err = Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionSwitch, WineID: 2}, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction for fainted wine, got %v", err)
	}
}

func TestValidateAbilityRequiresName(t *testing.T) {
	b, st := validateFixture()
	_, err := Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionAbility, WineID: 1}, validateMoves())
	if !errors.Is(err, ErrMalformedAction) {
		t.Fatalf("expected ErrMalformedAction, got %v", err)
	}

	v, err := Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionAbility, WineID: 1, Name: "aerate"}, validateMoves())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ActingWine == nil || v.ActingWine.WineID != 1 {
		t.Fatalf("expected acting wine to resolve")
	}
}

func TestValidateForfeitAlwaysLegalForHolder(t *testing.T) {
	b, st := validateFixture()
	st.Sides[0].Roster[0].Fainted = true
	st.Sides[0].Roster[1].Fainted = true
	v, err := Validate(b, st, "alice@example.com", battle.Action{Kind: battle.ActionForfeit}, validateMoves())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Actor != "alice@example.com" {
		t.Fatalf("expected actor to be set")
	}
}
