package audioconv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownmixStereoAverages(t *testing.T) {
	in := []float32{1, 0, 0.5, 0.5, -1, 1}
	out := downmix(in, 2)
	require.Equal(t, []float32{0.5, 0.5, 0}, out)
}

func TestDownmixDropsTrailingPartialFrame(t *testing.T) {
	out := downmix([]float32{1, 1, 1}, 2)
	require.Len(t, out, 1)
}

func TestResampleSameRateIsIdentity(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	require.Equal(t, in, resample(in, 16000, 16000))
}

func TestResampleHalvesSampleCount(t *testing.T) {
	in := make([]float32, 32000)
	out := resample(in, 32000, 16000)
	require.InDelta(t, 16000, len(out), 1)
}

func TestResampleInterpolatesBetweenSamples(t *testing.T) {
	// Doubling the rate of a ramp keeps it a ramp.
	in := []float32{0, 1}
	out := resample(in, 8000, 16000)
	require.Len(t, out, 4)
	require.InDelta(t, 0.5, out[1], 1e-6)
}

func TestNormalizeTruncates(t *testing.T) {
	in := pcm{samples: make([]float32, 1000), channels: 1, rate: TargetRate}
	out := normalize(in, 100)
	require.Len(t, out, 100)
}

func TestInt16ToFloat32Range(t *testing.T) {
	out := int16ToFloat32([]int16{0, 16384, -32768})
	require.InDelta(t, 0, out[0], 1e-9)
	require.InDelta(t, 0.5, out[1], 1e-6)
	require.InDelta(t, -1, out[2], 1e-6)
}

func TestDecodeFileMissing(t *testing.T) {
	_, err := DecodeFile("does-not-exist.wav", 0)
	require.Error(t, err)
}
