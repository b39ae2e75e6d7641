package service

import (
	"github.com/ericogr/vino-arena/internal/battle"
	"github.com/ericogr/vino-arena/internal/engine"
)

// SettlementDeltas computes the statistics-ledger payload for a finished
// battle. The winner receives a capped experience and rating credit; the
// loser a smaller experience credit and a bounded rating decrease (floored
// at zero by the ledger). A forfeit costs the quitter less rating than a
// natural loss.
func SettlementDeltas(b *battle.Battle, verdict engine.Verdict, forfeit bool, rules battle.RatingRules) map[string]battle.OutcomeDelta {
	deltas := make(map[string]battle.OutcomeDelta, 2)

	if verdict.Result == engine.ResultDraw {
		exp := minInt(rules.DrawExperience, rules.MaxExperienceGain)
		deltas[b.InitiatorEmail] = battle.OutcomeDelta{ExperienceDelta: exp}
		deltas[b.ParticipantEmail] = battle.OutcomeDelta{ExperienceDelta: exp}
		return deltas
	}

	winner := verdict.Winner
	loser := b.OpponentOf(winner)

	deltas[winner] = battle.OutcomeDelta{
		ExperienceDelta: minInt(rules.WinExperience, rules.MaxExperienceGain),
		RatingDelta:     minInt(rules.WinRatingGain, rules.MaxRatingGain),
		WinIncrement:    1,
	}

	penalty := rules.LossRatingPenalty
	forfeitInc := 0
	if forfeit {
		penalty = rules.ForfeitRatingPenalty
		forfeitInc = 1
	}
	deltas[loser] = battle.OutcomeDelta{
		ExperienceDelta:  minInt(rules.LossExperience, rules.MaxExperienceGain),
		RatingDelta:      -penalty,
		LossIncrement:    1,
		ForfeitIncrement: forfeitInc,
	}
	return deltas
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
