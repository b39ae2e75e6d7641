package engine

import "fmt"

// TypeChart maps attacking category -> defending category -> damage
// multiplier. Pairings absent from the chart resolve to 1.0.
type TypeChart map[string]map[string]float64

// Multiplier returns the effectiveness factor for the given pairing.
func (tc TypeChart) Multiplier(attacking, defending string) float64 {
	row, ok := tc[attacking]
	if !ok {
		return 1.0
	}
	m, ok := row[defending]
	if !ok {
		return 1.0
	}
	return m
}

// legalMultipliers is the closed set of effectiveness factors.
var legalMultipliers = map[float64]struct{}{
	0: {}, 0.5: {}, 1.0: {}, 1.5: {}, 2.0: {},
}

// Validate rejects charts containing multipliers outside {0, 0.5, 1, 1.5, 2}.
func (tc TypeChart) Validate() error {
	for atk, row := range tc {
		for def, m := range row {
			if _, ok := legalMultipliers[m]; !ok {
				return fmt.Errorf("type chart: illegal multiplier %v for %s vs %s", m, atk, def)
			}
		}
	}
	return nil
}
