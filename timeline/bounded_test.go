package timeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedScanKeepsOrder(t *testing.T) {
	window := []int{9, 3, 8, 1, 7}
	out, err := boundedScan(window, 10, func(v *int) (bool, error) {
		return *v > 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{9, 3, 8, 7}, out)
}

func TestBoundedScanStopsAtCap(t *testing.T) {
	window := []int{1, 2, 3, 4, 5}
	var probed int
	out, err := boundedScan(window, 2, func(v *int) (bool, error) {
		probed++
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)
	assert.Equal(t, 2, probed, "scan must stop once the cap is reached")
}

func TestBoundedScanFewerMatchesThanCap(t *testing.T) {
	out, err := boundedScan([]int{1, 2, 3}, 10, func(v *int) (bool, error) {
		return *v == 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, out)
}

func TestBoundedScanEmptyWindow(t *testing.T) {
	out, err := boundedScan(nil, 5, func(v *int) (bool, error) {
		t.Fatal("keep must not be called")
		return false, nil
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBoundedScanPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := boundedScan([]int{1, 2}, 5, func(v *int) (bool, error) {
		if *v == 2 {
			return false, boom
		}
		return true, nil
	})
	assert.ErrorIs(t, err, boom)
}
