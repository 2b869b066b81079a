package decompose

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// indexMap returns the original positions of the non-missing observations in
// order. It is the sole channel through which compacted-space results are
// translated back to the original, gapped index space.
func indexMap(y []float64) []int {
	m := make([]int, 0, len(y))
	for i, v := range y {
		if math.IsNaN(v) {
			continue
		}
		m = append(m, i)
	}
	return m
}

// compactVector restricts a full-length vector to the mapped positions.
func compactVector(src []float64, m []int) []float64 {
	dst := make([]float64, len(m))
	for k, idx := range m {
		dst[k] = src[idx]
	}
	return dst
}

// compactRows restricts the rows of a full-length design matrix to the mapped
// positions.
func compactRows(x mat.Matrix, m []int) *mat.Dense {
	_, cols := x.Dims()
	dst := mat.NewDense(len(m), cols, nil)
	for k, idx := range m {
		for j := 0; j < cols; j++ {
			dst.Set(k, j, x.At(idx, j))
		}
	}
	return dst
}

// expandVector projects a compacted-space vector back to a full-length array,
// filling originally-missing positions with NaN.
func expandVector(vals []float64, m []int, n int) []float64 {
	dst := make([]float64, n)
	for i := range dst {
		dst[i] = math.NaN()
	}
	for k, idx := range m {
		dst[idx] = vals[k]
	}
	return dst
}

// remapBreakpoints translates compacted-space breakpoint indices to original
// space and left-aligns them into a fixed-length zero-padded array. The
// returned count is the authoritative number of breakpoints; padded zero slots
// are a capacity artifact, not breakpoints at index 0.
func remapBreakpoints(bps, m []int, n int) ([]int, int) {
	dst := make([]int, n)
	for k, bp := range bps {
		dst[k] = m[bp]
	}
	return dst, len(bps)
}

// equalBreakpoints compares two breakpoint sets by structural equality: same
// length and same values in order.
func equalBreakpoints(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
