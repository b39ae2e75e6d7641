package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/storage"
)

// Roster size limits for one side.
const (
	minRosterSize = 1
	maxRosterSize = 6
)

// LifecycleRepo is the minimal repository interface required by battle
// creation, joining, and cancellation.
type LifecycleRepo interface {
	CreateBattle(b *battle.Battle, st *battle.StateDoc) error
	UpdateBattle(b *battle.Battle) error
	LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error)
	CommitBattle(b *battle.Battle, st *battle.StateDoc, expectedTurn int) error
	GetWinesByIDs(ids []uint) ([]battle.Wine, error)
	CommitWines(ids []uint, owner string) error
	ReleaseWines(ids []uint) error
	UpsertProfile(email, name string) error
}

type CreateBattleRequest struct {
	Email    string
	Name     string
	Category string
	Private  bool
	EntryFee int
	WineIDs  []uint
}

// CreateBattle opens a new session with the initiator's committed roster.
// Every roster wine must belong to the initiator and be free of other
// battles; the commit locks them exclusively until settlement or cancel.
func CreateBattle(repo LifecycleRepo, joinCode string, req CreateBattleRequest) (*battle.Battle, error) {
	roster, err := checkRoster(repo, req.Email, req.WineIDs)
	if err != nil {
		return nil, err
	}
	if err := repo.CommitWines(req.WineIDs, req.Email); err != nil {
		return nil, err
	}

	_ = repo.UpsertProfile(req.Email, req.Name)

	b := &battle.Battle{
		JoinCode:       joinCode,
		Category:       req.Category,
		Private:        req.Private,
		EntryFee:       req.EntryFee,
		InitiatorEmail: req.Email,
		InitiatorName:  req.Name,
		Status:         battle.StatusWaiting,
		Message:        "Battle created. Waiting for an opponent.",
	}
	st := &battle.StateDoc{
		TurnNumber: 0,
		Sides: [2]battle.Side{
			{Owner: req.Email, Roster: rosterStates(roster, req.WineIDs)},
			{},
		},
	}
	if err := repo.CreateBattle(b, st); err != nil {
		// Creation failed after the roster lock: free the wines so they
		// are not stranded.
		_ = repo.ReleaseWines(req.WineIDs)
		return nil, err
	}
	return b, nil
}

type JoinBattleRequest struct {
	Email   string
	Name    string
	WineIDs []uint
}

// JoinBattle commits the second roster and moves the session from Waiting to
// InProgress. The initiator holds the first turn.
func JoinBattle(repo LifecycleRepo, battleID uint, req JoinBattleRequest, turnTimeout time.Duration) (*battle.Battle, error) {
	b, st, err := repo.LoadBattle(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	if b.Status != battle.StatusWaiting || b.ParticipantEmail != "" {
		return nil, ErrBattleNotJoinable
	}
	if req.Email == b.InitiatorEmail {
		return nil, fmt.Errorf("%w: initiator cannot join their own battle", ErrBattleNotJoinable)
	}

	roster, err := checkRoster(repo, req.Email, req.WineIDs)
	if err != nil {
		return nil, err
	}
	if err := repo.CommitWines(req.WineIDs, req.Email); err != nil {
		return nil, err
	}

	_ = repo.UpsertProfile(req.Email, req.Name)

	expectedTurn := st.TurnNumber
	st.Sides[1] = battle.Side{Owner: req.Email, Roster: rosterStates(roster, req.WineIDs)}
	st.TurnHolder = b.InitiatorEmail

	b.ParticipantEmail = req.Email
	b.ParticipantName = req.Name
	b.Status = battle.StatusInProgress
	b.StartedAt = time.Now()
	b.Message = "Opponent joined. The battle begins."
	if turnTimeout > 0 {
		b.ActionDeadline = time.Now().Add(turnTimeout)
	}

	if err := repo.CommitBattle(b, st, expectedTurn); err != nil {
		_ = repo.ReleaseWines(req.WineIDs)
		if errors.Is(err, storage.ErrConflict) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return b, nil
}

// CancelBattle administratively cancels a waiting session. Once a battle is
// InProgress the only player-initiated exit is forfeit.
func CancelBattle(repo LifecycleRepo, battleID uint, userEmail string) error {
	b, st, err := repo.LoadBattle(battleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrBattleNotFound
		}
		return err
	}
	if !b.HasParticipant(userEmail) {
		return ErrNotParticipant
	}
	if b.Status != battle.StatusWaiting {
		return ErrCancelNotAllowed
	}

	b.Status = battle.StatusCancelled
	b.EndedAt = time.Now()
	b.Message = "Battle cancelled before start"
	if err := repo.UpdateBattle(b); err != nil {
		return err
	}
	return repo.ReleaseWines(st.Sides[0].WineIDs())
}

// checkRoster validates roster shape and ownership and returns the cellar
// records indexed for snapshot building.
func checkRoster(repo LifecycleRepo, email string, wineIDs []uint) (map[uint]battle.Wine, error) {
	if len(wineIDs) < minRosterSize || len(wineIDs) > maxRosterSize {
		return nil, fmt.Errorf("%w: roster must have between %d and %d wines", ErrInvalidRoster, minRosterSize, maxRosterSize)
	}
	seen := make(map[uint]struct{}, len(wineIDs))
	for _, id := range wineIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate wine %d", ErrInvalidRoster, id)
		}
		seen[id] = struct{}{}
	}

	wines, err := repo.GetWinesByIDs(wineIDs)
	if err != nil {
		return nil, err
	}
	if len(wines) != len(wineIDs) {
		return nil, fmt.Errorf("%w: unknown wine in roster", ErrInvalidRoster)
	}
	byID := make(map[uint]battle.Wine, len(wines))
	for i := range wines {
		w := wines[i]
		if w.OwnerEmail != email {
			return nil, ErrWineNotOwned
		}
		if w.InBattle {
			return nil, ErrWineCommitted
		}
		byID[w.ID] = w
	}
	return byID, nil
}

// rosterStates builds battle snapshots preserving the submitted order.
func rosterStates(byID map[uint]battle.Wine, wineIDs []uint) []battle.WineState {
	states := make([]battle.WineState, 0, len(wineIDs))
	for _, id := range wineIDs {
		w := byID[id]
		states = append(states, battle.NewWineState(&w))
	}
	return states
}
