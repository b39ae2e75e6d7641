package battle

import "time"

// WineState is the battle-local snapshot of one committed wine: the stats the
// engine needs plus mutable hit points and status effects. The cellar record
// itself is never mutated by combat.
type WineState struct {
	WineID     uint     `json:"wine_id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Level      int      `json:"level"`
	MaxHP      int      `json:"max_hp"`
	CurrentHP  int      `json:"current_hp"`
	Intensity  int      `json:"intensity"`
	Structure  int      `json:"structure"`
	Fainted    bool     `json:"fainted"`
	Statuses   []string `json:"statuses,omitempty"`
}

// ApplyDamage subtracts dmg from current hit points, flooring at zero and
// marking the wine fainted when it reaches zero.
func (w *WineState) ApplyDamage(dmg int) {
	w.CurrentHP -= dmg
	if w.CurrentHP <= 0 {
		w.CurrentHP = 0
		w.Fainted = true
	}
}

// Side holds one player's committed roster in battle order plus the index of
// the wine currently fielded.
type Side struct {
	Owner     string      `json:"owner"`
	Roster    []WineState `json:"roster"`
	ActiveIdx int         `json:"active_idx"`
}

// Active returns the currently fielded wine, or nil for an empty roster.
func (s *Side) Active() *WineState {
	if s.ActiveIdx < 0 || s.ActiveIdx >= len(s.Roster) {
		return nil
	}
	return &s.Roster[s.ActiveIdx]
}

// Find returns the roster entry with the given wine id, or nil.
func (s *Side) Find(wineID uint) *WineState {
	for i := range s.Roster {
		if s.Roster[i].WineID == wineID {
			return &s.Roster[i]
		}
	}
	return nil
}

// AllFainted reports whether every wine on the side is at zero hit points.
// An empty roster counts as fainted so end-condition checks stay total.
func (s *Side) AllFainted() bool {
	for i := range s.Roster {
		if !s.Roster[i].Fainted {
			return false
		}
	}
	return true
}

// WineIDs returns the roster's wine ids in battle order.
func (s *Side) WineIDs() []uint {
	ids := make([]uint, len(s.Roster))
	for i := range s.Roster {
		ids[i] = s.Roster[i].WineID
	}
	return ids
}

// LogEntry is one append-only record of a resolved action. Entries are never
// mutated after being appended.
type LogEntry struct {
	ID        string     `json:"id"`
	Turn      int        `json:"turn"`
	Actor     string     `json:"actor"`
	Kind      ActionKind `json:"kind"`
	Outcome   string     `json:"outcome"`
	Timestamp time.Time  `json:"timestamp"`
}

// StateDoc is the versioned battle-state document: one structured record per
// session, mutated exactly once per accepted action and committed with
// compare-and-swap keyed on TurnNumber.
type StateDoc struct {
	BattleID uint `json:"battle_id"`
	// TurnNumber strictly increases and matches the log length.
	TurnNumber int    `json:"turn_number"`
	TurnHolder string `json:"turn_holder"`

	Sides [2]Side `json:"sides"`

	// FieldModifiers carries battle-wide numeric modifiers (weather, cellar
	// conditions). Resolution reads them through the effect extension point.
	FieldModifiers map[string]int `json:"field_modifiers,omitempty"`

	Log []LogEntry `json:"log"`
}

// SideOf returns the participant's side and the opposing side. ok is false
// when the email is not a participant in this document.
func (st *StateDoc) SideOf(email string) (own, opp *Side, ok bool) {
	switch email {
	case st.Sides[0].Owner:
		return &st.Sides[0], &st.Sides[1], true
	case st.Sides[1].Owner:
		return &st.Sides[1], &st.Sides[0], true
	}
	return nil, nil, false
}

// Append records a resolved action in the battle log.
func (st *StateDoc) Append(e LogEntry) {
	st.Log = append(st.Log, e)
}

// NewWineState builds the battle snapshot for a cellar wine. Maximum hit
// points are the wine's attribute total.
func NewWineState(w *Wine) WineState {
	total := w.Total()
	return WineState{
		WineID:    w.ID,
		Name:      w.Name,
		Category:  w.Category,
		Level:     w.Level,
		MaxHP:     total,
		CurrentHP: total,
		Intensity: w.Intensity,
		Structure: w.Structure,
	}
}
