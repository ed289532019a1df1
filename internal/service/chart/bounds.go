package chart

import "math"

type scale int

const (
	scaleFree scale = iota
	// scaleNonNegative is for counts: the lower bound never drops below 0.
	scaleNonNegative
	// scaleRatio is for percentage-like values: the lower bound stays at or
	// above 0, and the upper bound at or below 1 while every value is <= 1.
	scaleRatio
)

const boundsPadding = 0.1

// bounds pads [min, max] of values by 10% of the range on each side. Explicit
// limits replace the computed ones. No values and no limits give [0, 0].
func bounds(values []float64, sc scale, explicitMin, explicitMax *float64) (float64, float64) {
	var lo, hi float64
	if len(values) > 0 {
		minV, maxV := values[0], values[0]
		for _, v := range values[1:] {
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		pad := (maxV - minV) * boundsPadding
		if pad == 0 {
			pad = math.Abs(maxV) * boundsPadding
			if pad == 0 {
				pad = 1
			}
		}
		lo, hi = minV-pad, maxV+pad

		if sc == scaleRatio || sc == scaleNonNegative {
			lo = math.Max(lo, 0)
		}
		if sc == scaleRatio && maxV <= 1 {
			hi = math.Min(hi, 1)
		}
	}

	if explicitMin != nil {
		lo = *explicitMin
	}
	if explicitMax != nil {
		hi = *explicitMax
	}
	return lo, hi
}
