package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeanAbsSilence(t *testing.T) {
	require.Zero(t, meanAbs(make([]float32, 1024)))
	require.Zero(t, meanAbs(nil))
}

func TestMeanAbsIgnoresSign(t *testing.T) {
	require.InDelta(t, 0.5, meanAbs([]float32{0.5, -0.5, 0.5, -0.5}), 1e-9)
}

func TestMeanAbsMixedFrame(t *testing.T) {
	require.InDelta(t, 0.25, meanAbs([]float32{0, 0, 0.5, -0.5}), 1e-9)
}
