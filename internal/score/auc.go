package score

// minTotalLength keeps MeanAreaUnderCurve finite for runs with no recorded time.
const minTotalLength = 1e-4

// AreaUnderCurve computes the total area of rewards under the curve, treating each
// episode as a rectangle of width length and height reward.
func AreaUnderCurve(lengths []int, rewards []float64) float64 {
	n := min(len(lengths), len(rewards))

	var area float64
	for i := 0; i < n; i++ {
		area += float64(lengths[i]) * rewards[i]
	}
	return area
}

// MeanAreaUnderCurve computes the average area of rewards under the curve per unit of time.
func MeanAreaUnderCurve(lengths []int, rewards []float64) float64 {
	var total float64
	for _, l := range lengths {
		total += float64(l)
	}
	return AreaUnderCurve(lengths, rewards) / max(minTotalLength, total)
}
