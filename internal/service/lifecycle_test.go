package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/storage"
)

type mockRepoLC struct {
	wines map[uint]battle.Wine

	b  *battle.Battle
	st *battle.StateDoc

	createErr error
	commitErr error

	committed []uint
	released  []uint
}

func (m *mockRepoLC) CreateBattle(b *battle.Battle, st *battle.StateDoc) error {
	if m.createErr != nil {
		return m.createErr
	}
	b.ID = 1
	m.b, m.st = b, st
	return nil
}

func (m *mockRepoLC) UpdateBattle(b *battle.Battle) error {
	m.b = b
	return nil
}

func (m *mockRepoLC) LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error) {
	if m.b == nil || m.b.ID != id {
		return nil, nil, storage.ErrNotFound
	}
	return m.b, m.st, nil
}

func (m *mockRepoLC) CommitBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.b, m.st = b, st
	return nil
}

func (m *mockRepoLC) GetWinesByIDs(ids []uint) ([]battle.Wine, error) {
	out := make([]battle.Wine, 0, len(ids))
	for _, id := range ids {
		if w, ok := m.wines[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *mockRepoLC) CommitWines(ids []uint, owner string) error {
	m.committed = append(m.committed, ids...)
	return nil
}

func (m *mockRepoLC) ReleaseWines(ids []uint) error {
	m.released = append(m.released, ids...)
	return nil
}

func (m *mockRepoLC) UpsertProfile(email, name string) error { return nil }

func lifecycleWine(id uint, owner string) battle.Wine {
	w := battle.Wine{
		OwnerEmail: owner,
		Name:       "Wine",
		Category:   "red",
		Level:      10,
		Intensity:  60,
		Structure:  50,
		Complexity: 40,
		Longevity:  30,
		Rarity:     20,
		Terroir:    10,
	}
	w.ID = id
	return w
}

func lifecycleRepo() *mockRepoLC {
	return &mockRepoLC{wines: map[uint]battle.Wine{
		1: lifecycleWine(1, "alice@example.com"),
		2: lifecycleWine(2, "alice@example.com"),
		3: lifecycleWine(3, "bob@example.com"),
	}}
}

func TestCreateBattleCommitsRoster(t *testing.T) {
	mr := lifecycleRepo()
	b, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{
		Email:   "alice@example.com",
		Name:    "Alice",
		WineIDs: []uint{2, 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != battle.StatusWaiting || b.JoinCode != "AAAA1111" {
		t.Fatalf("unexpected battle: %+v", b)
	}
	if len(mr.committed) != 2 {
		t.Fatalf("expected roster locked, got %v", mr.committed)
	}
	// Roster order follows the submitted order, not the storage order.
	if ids := mr.st.Sides[0].WineIDs(); len(ids) != 2 || ids[0] != 2 || ids[1] != 1 {
		t.Fatalf("roster order not preserved: %v", ids)
	}
	if mr.st.TurnNumber != 0 {
		t.Fatalf("new battle must start at turn 0")
	}
}

func TestCreateBattleRejectsBadRosters(t *testing.T) {
	mr := lifecycleRepo()

	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: nil}); !errors.Is(err, ErrInvalidRoster) {
		t.Fatalf("expected ErrInvalidRoster for empty roster, got %v", err)
	}
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1, 1}}); !errors.Is(err, ErrInvalidRoster) {
		t.Fatalf("expected ErrInvalidRoster for duplicate, got %v", err)
	}
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{99}}); !errors.Is(err, ErrInvalidRoster) {
		t.Fatalf("expected ErrInvalidRoster for unknown wine, got %v", err)
	}
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{3}}); !errors.Is(err, ErrWineNotOwned) {
		t.Fatalf("expected ErrWineNotOwned, got %v", err)
	}

	w := mr.wines[1]
	w.InBattle = true
	mr.wines[1] = w
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1}}); !errors.Is(err, ErrWineCommitted) {
		t.Fatalf("expected ErrWineCommitted, got %v", err)
	}
}

func TestCreateBattleReleasesRosterOnStoreFailure(t *testing.T) {
	mr := lifecycleRepo()
	mr.createErr = errors.New("store down")

	_, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(mr.released) != 1 || mr.released[0] != 1 {
		t.Fatalf("expected locked roster released, got %v", mr.released)
	}
}

func TestJoinBattleStartsMatch(t *testing.T) {
	mr := lifecycleRepo()
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", Name: "Alice", WineIDs: []uint{1}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	b, err := JoinBattle(mr, 1, JoinBattleRequest{Email: "bob@example.com", Name: "Bob", WineIDs: []uint{3}}, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != battle.StatusInProgress {
		t.Fatalf("expected in-progress battle, got %s", b.Status)
	}
	if mr.st.TurnHolder != "alice@example.com" {
		t.Fatalf("the initiator must hold the first turn, got %s", mr.st.TurnHolder)
	}
	if mr.st.Sides[1].Owner != "bob@example.com" {
		t.Fatalf("second side not installed: %+v", mr.st.Sides[1])
	}
	if b.ActionDeadline.IsZero() {
		t.Fatalf("expected an action deadline with a timeout policy")
	}
}

func TestJoinBattleRejectsInitiatorAndStartedBattles(t *testing.T) {
	mr := lifecycleRepo()
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := JoinBattle(mr, 1, JoinBattleRequest{Email: "alice@example.com", WineIDs: []uint{2}}, 0); !errors.Is(err, ErrBattleNotJoinable) {
		t.Fatalf("expected ErrBattleNotJoinable for self-join, got %v", err)
	}

	mr.b.Status = battle.StatusInProgress
	if _, err := JoinBattle(mr, 1, JoinBattleRequest{Email: "bob@example.com", WineIDs: []uint{3}}, 0); !errors.Is(err, ErrBattleNotJoinable) {
		t.Fatalf("expected ErrBattleNotJoinable for started battle, got %v", err)
	}
}

func TestJoinBattleReleasesRosterOnConflict(t *testing.T) {
	mr := lifecycleRepo()
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	mr.commitErr = storage.ErrConflict

	_, err := JoinBattle(mr, 1, JoinBattleRequest{Email: "bob@example.com", WineIDs: []uint{3}}, 0)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(mr.released) != 1 || mr.released[0] != 3 {
		t.Fatalf("expected joiner roster released, got %v", mr.released)
	}
}

func TestCancelBattleOnlyBeforeStart(t *testing.T) {
	mr := lifecycleRepo()
	if _, err := CreateBattle(mr, "AAAA1111", CreateBattleRequest{Email: "alice@example.com", WineIDs: []uint{1}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := CancelBattle(mr, 1, "mallory@example.com"); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}

	if err := CancelBattle(mr, 1, "alice@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.b.Status != battle.StatusCancelled {
		t.Fatalf("expected cancelled battle, got %s", mr.b.Status)
	}
	if len(mr.released) != 1 || mr.released[0] != 1 {
		t.Fatalf("expected roster released on cancel, got %v", mr.released)
	}

	mr.b.Status = battle.StatusInProgress
	if err := CancelBattle(mr, 1, "alice@example.com"); !errors.Is(err, ErrCancelNotAllowed) {
		t.Fatalf("expected ErrCancelNotAllowed, got %v", err)
	}
}
