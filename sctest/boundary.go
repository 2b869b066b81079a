package sctest

// Simulated critical values for the maximum of an OLS-based MOSUM process with
// bandwidth h, after Chu, Hornik & Kuan. Rows are bandwidths, columns the
// significance levels in pLevels. P-values in between are recovered by
// bilinear interpolation; statistics below the 20% critical value map to 1 and
// statistics beyond the 1% critical value map to 0.

var (
	pLevels = []float64{0.2, 0.15, 0.1, 0.05, 0.025, 0.01}

	critBandwidths = []float64{0.05, 0.1, 0.15, 0.2, 0.25, 0.3, 0.35, 0.4, 0.45, 0.5}

	critValues = [][]float64{
		{3.2165, 3.3185, 3.4554, 3.6622, 3.8632, 4.1009},
		{2.9795, 3.0894, 3.2368, 3.4681, 3.6707, 3.9397},
		{2.8289, 2.9479, 3.1028, 3.3382, 3.5598, 3.8143},
		{2.7099, 2.8303, 2.9874, 3.2351, 3.4604, 3.7337},
		{2.6061, 2.7325, 2.8985, 3.1531, 3.3845, 3.6626},
		{2.5111, 2.6418, 2.8134, 3.0728, 3.3102, 3.5907},
		{2.4283, 2.5609, 2.7327, 3.0043, 3.2461, 3.5333},
		{2.3464, 2.4840, 2.6605, 2.9333, 3.1823, 3.4895},
		{2.2686, 2.4083, 2.5899, 2.8743, 3.1229, 3.4123},
		{2.2255, 2.3668, 2.5505, 2.8334, 3.0737, 3.3912},
	}
)

// crossingPValue interpolates the p-value of the observed maximum statistic for
// the given bandwidth.
func crossingPValue(stat, h float64) float64 {
	crit := critRow(h)

	if stat <= crit[0] {
		return 1.0
	}
	if stat >= crit[len(crit)-1] {
		return 0.0
	}
	for i := 1; i < len(crit); i++ {
		if stat > crit[i] {
			continue
		}
		frac := (stat - crit[i-1]) / (crit[i] - crit[i-1])
		return pLevels[i-1] + frac*(pLevels[i]-pLevels[i-1])
	}
	return 0.0
}

// critRow interpolates the critical value row for an arbitrary bandwidth,
// clamping outside the simulated range.
func critRow(h float64) []float64 {
	if h <= critBandwidths[0] {
		return critValues[0]
	}
	last := len(critBandwidths) - 1
	if h >= critBandwidths[last] {
		return critValues[last]
	}

	hi := 1
	for critBandwidths[hi] < h {
		hi++
	}
	lo := hi - 1
	frac := (h - critBandwidths[lo]) / (critBandwidths[hi] - critBandwidths[lo])

	row := make([]float64, len(pLevels))
	for j := range row {
		row[j] = critValues[lo][j] + frac*(critValues[hi][j]-critValues[lo][j])
	}
	return row
}
