package decompose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func constDesign(n int) *mat.Dense {
	x := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1.0)
	}
	return x
}

func TestPartitionMatrix(t *testing.T) {
	x := mat.NewDense(6, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
		1, 4,
		1, 5,
	})
	p := partitionMatrix(x, []int{2, 4})

	rows, cols := p.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 6, cols)

	for i := 0; i < rows; i++ {
		seg := 0
		switch {
		case i >= 4:
			seg = 2
		case i >= 2:
			seg = 1
		}
		for j := 0; j < cols; j++ {
			expected := 0.0
			if j/2 == seg {
				expected = x.At(i, j%2)
			}
			assert.Equal(t, expected, p.At(i, j), "row %d col %d", i, j)
		}
	}
}

func TestSegmentedFitSingleRegime(t *testing.T) {
	n := 8
	y := []float64{3, 3, 3, 3, 3, 3, 3, 3}

	fitted, err := segmentedFit(constDesign(n), y, nil)
	require.Nil(t, err)
	assert.InDeltaSlice(t, y, fitted, 1e-10)
}

func TestSegmentedFitExactDiscontinuity(t *testing.T) {
	n := 10
	y := []float64{1, 1, 1, 1, 1, 4, 4, 4, 4, 4}

	fitted, err := segmentedFit(constDesign(n), y, []int{5})
	require.Nil(t, err)

	// regime means, with the boundary an exact jump rather than a smoothed
	// transition
	for i := 0; i < 5; i++ {
		assert.InDelta(t, 1.0, fitted[i], 1e-10)
	}
	for i := 5; i < n; i++ {
		assert.InDelta(t, 4.0, fitted[i], 1e-10)
	}
}
