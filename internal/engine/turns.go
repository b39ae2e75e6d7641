package engine

import "github.com/ericogr/vino-arena/internal/battle"

// Result classifies the end-condition check after a resolved action.
type Result int

const (
	ResultContinue Result = iota
	ResultWin
	ResultDraw
)

// Verdict is the turn coordinator's decision. Winner is set only for
// ResultWin and holds the winning player's email.
type Verdict struct {
	Result Result
	Winner string
}

// Terminal reports whether the battle has ended.
func (v Verdict) Terminal() bool { return v.Result != ResultContinue }

// CheckEnd inspects both rosters: the opposite side wins when exactly one
// side has no surviving wine; both sides empty is a draw.
func CheckEnd(st *battle.StateDoc) Verdict {
	down0 := st.Sides[0].AllFainted()
	down1 := st.Sides[1].AllFainted()
	switch {
	case down0 && down1:
		return Verdict{Result: ResultDraw}
	case down0:
		return Verdict{Result: ResultWin, Winner: st.Sides[1].Owner}
	case down1:
		return Verdict{Result: ResultWin, Winner: st.Sides[0].Owner}
	}
	return Verdict{Result: ResultContinue}
}

// Advance moves the battle past a resolved action: the turn number
// increments, the end condition is checked, and on a continuing battle the
// turn holder flips to the other participant. A forfeit skips the roster
// check and the holder flip and immediately awards the win to the opponent;
// the turn number still increments so the optimistic commit swaps on a
// fresh version and the log-length equality holds for every entry.
func Advance(st *battle.StateDoc, out Outcome) Verdict {
	st.TurnNumber++
	if out.Forfeit {
		_, opp, _ := st.SideOf(st.TurnHolder)
		return Verdict{Result: ResultWin, Winner: opp.Owner}
	}

	v := CheckEnd(st)
	if v.Terminal() {
		return v
	}

	_, opp, _ := st.SideOf(st.TurnHolder)
	st.TurnHolder = opp.Owner
	return v
}
