package service

import (
	"testing"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/storage"
)

func timeoutConfig() Config {
	cfg := submitConfig()
	cfg.TurnTimeout = time.Minute
	return cfg
}

func TestHandleTimedOutBattleDisabledPolicy(t *testing.T) {
	mr := submitFixture()
	mr.b.ActionDeadline = time.Now().Add(-time.Hour)

	if err := HandleTimedOutBattle(mr, fixedRand{}, submitConfig(), 7, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.settleCalls != 0 {
		t.Fatalf("disabled policy must not settle anything")
	}
}

func TestHandleTimedOutBattleForfeitsIdleHolder(t *testing.T) {
	mr := submitFixture()
	mr.b.ActionDeadline = time.Now().Add(-time.Hour)

	if err := HandleTimedOutBattle(mr, fixedRand{}, timeoutConfig(), 7, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.settleCalls != 1 {
		t.Fatalf("expected the idle holder's forfeit to settle, got %d settlements", mr.settleCalls)
	}
	if mr.b.Winner != "bob@example.com" {
		t.Fatalf("expected the waiting player to win, got %q", mr.b.Winner)
	}
	d := mr.settledDeltas["alice@example.com"]
	if d.ForfeitIncrement != 1 {
		t.Fatalf("expected a forfeit on the idle holder's record, got %+v", d)
	}
}

func TestHandleTimedOutBattleSkipsLiveBattles(t *testing.T) {
	mr := submitFixture()

	// Future deadline: nothing to do.
	mr.b.ActionDeadline = time.Now().Add(time.Hour)
	if err := HandleTimedOutBattle(mr, fixedRand{}, timeoutConfig(), 7, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.settleCalls != 0 {
		t.Fatalf("live battle must not be forfeited")
	}

	// Terminal battle: nothing to do either.
	mr.b.Status = battle.StatusCompleted
	mr.b.ActionDeadline = time.Now().Add(-time.Hour)
	if err := HandleTimedOutBattle(mr, fixedRand{}, timeoutConfig(), 7, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.settleCalls != 0 {
		t.Fatalf("completed battle must not be forfeited")
	}
}

func TestHandleTimedOutBattleSwallowsConflict(t *testing.T) {
	mr := submitFixture()
	mr.b.ActionDeadline = time.Now().Add(-time.Hour)
	mr.settleErr = storage.ErrConflict

	// A racing action won the swap; the scanner treats the battle as live.
	if err := HandleTimedOutBattle(mr, fixedRand{}, timeoutConfig(), 7, time.Now()); err != nil {
		t.Fatalf("expected conflict to be swallowed, got %v", err)
	}
}
