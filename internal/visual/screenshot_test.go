package visual

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareEqual(t *testing.T) {
	diff := Compare([]byte{1, 2, 3}, []byte{1, 2, 3})
	assert.True(t, diff.Equal)
	assert.Equal(t, 0, diff.DifferingBytes)
	assert.Equal(t, 1.0, diff.MatchRatio)
}

func TestCompareCountsDifferingBytes(t *testing.T) {
	diff := Compare([]byte{1, 2, 3, 4}, []byte{1, 9, 3, 9})
	assert.False(t, diff.Equal)
	assert.Equal(t, 2, diff.DifferingBytes)
	assert.InDelta(t, 0.5, diff.MatchRatio, 0.001)
}

func TestCompareSizeMismatchCountsAsDiff(t *testing.T) {
	diff := Compare([]byte{1, 2, 3}, []byte{1, 2, 3, 4, 5})
	assert.False(t, diff.Equal)
	assert.Equal(t, 2, diff.DifferingBytes)
	assert.Equal(t, 2, diff.SizeDelta)
}

func TestCompareEmptyInputs(t *testing.T) {
	diff := Compare(nil, nil)
	assert.True(t, diff.Equal)
	assert.Equal(t, 1.0, diff.MatchRatio)
}

func TestCompareWithBaselineFirstRunWritesBaseline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "baselines", "login.png")

	diff, err := CompareWithBaseline(path, []byte("capture"))
	require.NoError(t, err)
	assert.True(t, diff.FirstRun)
	assert.True(t, diff.Equal)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("capture"), written)
}

func TestCompareWithBaselineSecondRunCompares(t *testing.T) {
	path := filepath.Join(t.TempDir(), "login.png")
	require.NoError(t, os.WriteFile(path, []byte("aaaa"), 0644))

	diff, err := CompareWithBaseline(path, []byte("aaab"))
	require.NoError(t, err)
	assert.False(t, diff.FirstRun)
	assert.False(t, diff.Equal)
	assert.Equal(t, 1, diff.DifferingBytes)
}
