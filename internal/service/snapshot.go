package service

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/dedupe"
	"github.com/ericogr/vino-arena/internal/storage"
)

// SnapshotRepo is the minimal repository interface required by GetSnapshot.
type SnapshotRepo interface {
	LoadBattle(id uint) (*battle.Battle, *battle.StateDoc, error)
}

// Snapshot is the access-controlled read model returned to a participant.
// AvailableActions is populated only for the current turn holder.
type Snapshot struct {
	Battle           *battle.Battle   `json:"battle"`
	State            *battle.StateDoc `json:"state"`
	AvailableActions []battle.Action  `json:"available_actions"`
}

type loadedBattle struct {
	b  *battle.Battle
	st *battle.StateDoc
}

// GetSnapshot returns the battle view for one participant. Concurrent loads
// of the same battle are collapsed through a singleflight group: polling
// clients share a single store round-trip.
func GetSnapshot(repo SnapshotRepo, moves battle.MoveSet, battleID uint, userEmail string) (*Snapshot, error) {
	v, err, _ := dedupe.SnapshotGroup.Do(fmt.Sprintf("battle:%d", battleID), func() (interface{}, error) {
		b, st, err := repo.LoadBattle(battleID)
		if err != nil {
			return nil, err
		}
		return loadedBattle{b: b, st: st}, nil
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBattleNotFound
		}
		return nil, err
	}
	loaded := v.(loadedBattle)

	if !loaded.b.HasParticipant(userEmail) {
		return nil, ErrNotParticipant
	}

	return &Snapshot{
		Battle:           loaded.b,
		State:            loaded.st,
		AvailableActions: availableActions(loaded.b, loaded.st, moves, userEmail),
	}, nil
}

// availableActions enumerates the legal submissions for the turn holder:
// every configured move with the fielded wine (targeting the opposing
// fielded wine when damaging), a switch to each benched survivor, and
// forfeit. Ability and item entries are not enumerated because their
// catalogs live behind the secondary-effect extension point.
func availableActions(b *battle.Battle, st *battle.StateDoc, moves battle.MoveSet, userEmail string) []battle.Action {
	if b.Status != battle.StatusInProgress || st.TurnHolder != userEmail {
		return nil
	}
	own, opp, ok := st.SideOf(userEmail)
	if !ok {
		return nil
	}
	active := own.Active()
	oppActive := opp.Active()

	var actions []battle.Action

	if active != nil && !active.Fainted {
		names := make([]string, 0, len(moves))
		for name := range moves {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if moves[names[i]].Priority != moves[names[j]].Priority {
				return moves[names[i]].Priority > moves[names[j]].Priority
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			a := battle.Action{Kind: battle.ActionMove, WineID: active.WineID, Move: name}
			if moves[name].Damaging() {
				if oppActive == nil || oppActive.Fainted {
					continue
				}
				a.TargetID = oppActive.WineID
			}
			actions = append(actions, a)
		}
	}

	for i := range own.Roster {
		w := &own.Roster[i]
		if w.Fainted || (active != nil && w.WineID == active.WineID) {
			continue
		}
		actions = append(actions, battle.Action{Kind: battle.ActionSwitch, WineID: w.WineID})
	}

	actions = append(actions, battle.Action{Kind: battle.ActionForfeit})
	return actions
}
