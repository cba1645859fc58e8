// Package audio owns microphone capture and reply playback.
package audio

import (
	"context"
	"time"

	"github.com/gordonklaus/portaudio"
)

// SampleRate is the capture rate expected by the transcriber.
const SampleRate = 16000

const frameSize = 1024 // 64ms per frame at 16kHz

// CaptureStatus distinguishes a real utterance from silence. Silence is a
// benign outcome, not an error.
type CaptureStatus int

const (
	CaptureSpeech CaptureStatus = iota
	CaptureNoSpeech
)

// Capture is one bounded utterance, mono float32 at SampleRate.
type Capture struct {
	Status CaptureStatus
	PCM    []float32
}

type Recorder struct {
	// SilenceThreshold is the mean absolute amplitude above which a frame
	// counts as speech.
	SilenceThreshold float64
	// SilenceDuration of consecutive quiet frames ends the utterance once
	// speech has started.
	SilenceDuration time.Duration
	// Timeout bounds total listening time regardless of speech state.
	Timeout time.Duration
}

func NewRecorder(threshold float64, silence, timeout time.Duration) *Recorder {
	return &Recorder{
		SilenceThreshold: threshold,
		SilenceDuration:  silence,
		Timeout:          timeout,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Listen reads frames until trailing silence or the timeout delimits an
// utterance. Capture starts on the first loud frame; if none occurs before
// the timeout the result is CaptureNoSpeech. A timeout mid-speech still
// returns whatever was captured. Cancelling ctx aborts between frame reads.
func (r *Recorder) Listen(ctx context.Context) (Capture, error) {
	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(SampleRate), len(buf), buf)
	if err != nil {
		return Capture{}, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return Capture{}, err
	}
	defer stream.Stop()

	frameDur := time.Duration(frameSize) * time.Second / SampleRate
	maxSilentFrames := int(r.SilenceDuration / frameDur)
	if maxSilentFrames < 1 {
		maxSilentFrames = 1
	}

	var (
		started      bool
		silentFrames int
		out          = make([]float32, 0, SampleRate*3)
		deadline     = time.Now().Add(r.Timeout)
	)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return Capture{}, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return Capture{}, err
		}

		if meanAbs(buf) > r.SilenceThreshold {
			started = true
			silentFrames = 0
			out = append(out, buf...)
			continue
		}

		if !started {
			continue
		}
		silentFrames++
		if silentFrames >= maxSilentFrames {
			break
		}
		out = append(out, buf...)
	}

	if !started {
		return Capture{Status: CaptureNoSpeech}, nil
	}
	return Capture{Status: CaptureSpeech, PCM: out}, nil
}

func meanAbs(f []float32) float64 {
	if len(f) == 0 {
		return 0
	}
	var s float64
	for _, x := range f {
		if x < 0 {
			s -= float64(x)
		} else {
			s += float64(x)
		}
	}
	return s / float64(len(f))
}
