package friendship

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeIDs(t *testing.T) {
	assert.Empty(t, decodeIDs(""))
	assert.Equal(t, []int64{1, 2, 3}, decodeIDs("1,2,3"))
	assert.Equal(t, []int64{42}, decodeIDs("42"))
}

func TestDecodeIDsToleratesEmptyTokens(t *testing.T) {
	// Historic writers appended ",<id>" to an empty value.
	assert.Equal(t, []int64{3}, decodeIDs(",3"))
	assert.Equal(t, []int64{1, 2}, decodeIDs("1,,2,"))
}

func TestDecodeIDsSkipsGarbage(t *testing.T) {
	assert.Equal(t, []int64{7}, decodeIDs("x,7,1.5"))
}

func TestEncodeIDs(t *testing.T) {
	assert.Equal(t, "", encodeIDs(nil))
	assert.Equal(t, "5", encodeIDs([]int64{5}))
	assert.Equal(t, "1,2,3", encodeIDs([]int64{1, 2, 3}))
}

func TestAppendID(t *testing.T) {
	assert.Equal(t, "9", appendID("", 9))
	assert.Equal(t, "1,9", appendID("1", 9))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	ids := []int64{10, 20, 30}
	assert.Equal(t, ids, decodeIDs(encodeIDs(ids)))
}
