package battle

// ActionKind is a string alias for a player action. The set of kinds is
// closed: every switch over ActionKind must enumerate all five values.
type ActionKind string

const (
	ActionMove    ActionKind = "move"
	ActionAbility ActionKind = "ability"
	ActionItem    ActionKind = "item"
	ActionSwitch  ActionKind = "switch"
	ActionForfeit ActionKind = "forfeit"
)

// KnownKind reports whether k is one of the five action kinds.
func KnownKind(k ActionKind) bool {
	switch k {
	case ActionMove, ActionAbility, ActionItem, ActionSwitch, ActionForfeit:
		return true
	}
	return false
}

// Action is the tagged-union payload a player submits for a turn. Which
// fields are meaningful depends on Kind:
//
//	move    — WineID (actor), Move (name), TargetID (opposing wine for a
//	          damaging move)
//	ability — WineID (actor), Name (ability)
//	item    — WineID (actor), Name (item)
//	switch  — WineID (benched wine to field)
//	forfeit — no fields
type Action struct {
	Kind     ActionKind `json:"kind"`
	WineID   uint       `json:"wine_id,omitempty"`
	Move     string     `json:"move,omitempty"`
	TargetID uint       `json:"target_id,omitempty"`
	Name     string     `json:"name,omitempty"`
}
