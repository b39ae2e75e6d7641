package engine

import "math"

const (
	// Critical hits land 1 in 16 draws, or 1 in 4 for moves whose effect
	// tag includes "critical".
	critDenominator        = 16
	critDenominatorBoosted = 4
	critMultiplier         = 1.5

	// The damage variance draw is uniform on [varianceMin, 1.0].
	varianceMin = 0.85
)

// Damage computes final hit-point damage for a landed damaging move.
//
// The base formula is floor(((2*level + 10) / 250) * (intensity/structure) *
// power + 2); the result is then scaled by the type-effectiveness factor, the
// critical multiplier when critical is set, and the variance draw, floored,
// and clamped to a minimum of 1.
func Damage(level, intensity, structure, power int, effectiveness float64, critical bool, variance float64) int {
	if structure < 1 {
		structure = 1
	}
	base := math.Floor((float64(2*level+10)/250.0)*(float64(intensity)/float64(structure))*float64(power) + 2)

	dmg := base * effectiveness
	if critical {
		dmg *= critMultiplier
	}
	dmg *= variance

	n := int(math.Floor(dmg))
	if n < 1 {
		n = 1
	}
	return n
}

// rollAccuracy draws the accuracy check: a uniform roll on [0, 100) strictly
// above the move's accuracy means a miss.
func rollAccuracy(rng Rand, accuracy int) (roll float64, miss bool) {
	roll = rng.Float64() * 100
	return roll, roll > float64(accuracy)
}

// rollCritical draws the independent critical check.
func rollCritical(rng Rand, boosted bool) bool {
	den := critDenominator
	if boosted {
		den = critDenominatorBoosted
	}
	return rng.Intn(den) == 0
}

// rollVariance draws the uniform damage variance on [0.85, 1.0].
func rollVariance(rng Rand) float64 {
	return varianceMin + rng.Float64()*(1.0-varianceMin)
}
