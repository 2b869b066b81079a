package seasonal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeValidate(t *testing.T) {
	testData := map[string]struct {
		seasonType Type
		err        error
	}{
		"dummy":    {Dummy, nil},
		"harmonic": {Harmonic, nil},
		"none":     {None, nil},
		"unknown":  {Type("fourier"), ErrUnknownType},
		"empty":    {Type(""), ErrUnknownType},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.seasonType.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.Nil(t, err)
		})
	}
}

func TestDesignMatrixErrors(t *testing.T) {
	testData := map[string]struct {
		seasonType Type
		frequency  int
		n          int
		err        error
	}{
		"unknown type":  {Type("stl"), 12, 24, ErrUnknownType},
		"low frequency": {Dummy, 1, 24, ErrInvalidFrequency},
		"empty series":  {Harmonic, 12, 0, ErrInvalidLength},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := DesignMatrix(td.seasonType, td.frequency, td.n)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestDesignMatrixNone(t *testing.T) {
	smod, err := DesignMatrix(None, 12, 24)
	require.Nil(t, err)
	assert.Nil(t, smod)
}

func TestDesignMatrixHarmonic(t *testing.T) {
	frequency := 12
	n := 30
	smod, err := DesignMatrix(Harmonic, frequency, n)
	require.Nil(t, err)

	rows, cols := smod.Dims()
	require.Equal(t, n, rows)
	require.Equal(t, 2*HarmonicOrders, cols)

	tol := 1e-12
	for i := 0; i < n; i++ {
		tl := float64(i + 1)
		for k := 1; k <= HarmonicOrders; k++ {
			phase := 2.0 * math.Pi * tl * float64(k) / float64(frequency)
			assert.InDelta(t, math.Cos(phase), smod.At(i, 2*(k-1)), tol)
			assert.InDelta(t, math.Sin(phase), smod.At(i, 2*(k-1)+1), tol)
		}
	}

	// one full period back to the same seasonal position
	for j := 0; j < cols; j++ {
		assert.InDelta(t, smod.At(0, j), smod.At(frequency, j), tol)
	}
}

func TestDesignMatrixHarmonicLowFrequency(t *testing.T) {
	testData := map[string]struct {
		frequency int
		cols      int
	}{
		"two":   {2, 1},
		"three": {3, 2},
		"four":  {4, 3},
		"five":  {5, 4},
		"six":   {6, 5},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			n := 3 * td.frequency
			smod, err := DesignMatrix(Harmonic, td.frequency, n)
			require.Nil(t, err)

			rows, cols := smod.Dims()
			require.Equal(t, n, rows)
			require.Equal(t, td.cols, cols)

			// every column carries signal; an identically zero column would
			// make the seasonal regression singular
			for j := 0; j < cols; j++ {
				var sum float64
				for i := 0; i < rows; i++ {
					sum += math.Abs(smod.At(i, j))
				}
				assert.Greater(t, sum, 1e-9, "col %d", j)
			}
		})
	}
}

func TestDesignMatrixDummy(t *testing.T) {
	frequency := 4
	n := 10 // truncates mid-block
	smod, err := DesignMatrix(Dummy, frequency, n)
	require.Nil(t, err)

	rows, cols := smod.Dims()
	require.Equal(t, n, rows)
	require.Equal(t, frequency, cols)

	for i := 0; i < n; i++ {
		assert.Equal(t, 1.0, smod.At(i, 0), "row %d intercept", i)

		pos := i % frequency
		for j := 1; j < cols; j++ {
			expected := 0.0
			switch {
			case pos == frequency-1:
				expected = -1.0
			case j == pos+1:
				expected = 1.0
			}
			assert.Equal(t, expected, smod.At(i, j), "row %d col %d", i, j)
		}
	}

	// indicator columns sum to zero over any whole period
	for j := 1; j < cols; j++ {
		var sum float64
		for i := 0; i < 2*frequency; i++ {
			sum += smod.At(i, j)
		}
		assert.Equal(t, 0.0, sum, "col %d", j)
	}
}
