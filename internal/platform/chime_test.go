package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	initCalls int
	initErr   error
	queued    []beep.Streamer
}

func (output *fakeOutput) Init(beep.SampleRate, int) error {
	output.initCalls++
	return output.initErr
}

func (output *fakeOutput) Play(streamers ...beep.Streamer) {
	output.queued = append(output.queued, streamers...)
}

// drain streams everything queued and returns the sample count.
func (output *fakeOutput) drain() int {
	total := 0
	samples := make([][2]float64, 512)
	for _, streamer := range output.queued {
		for {
			n, ok := streamer.Stream(samples)
			total += n
			if !ok {
				break
			}
		}
	}
	output.queued = nil
	return total
}

func TestChimeDropsOverlappingPlayback(t *testing.T) {
	output := &fakeOutput{}
	chime := NewChimeWithOutput(ChimeConfig{}, output)

	require.NoError(t, chime.Play())
	assert.True(t, chime.Playing())
	assert.ErrorIs(t, chime.Play(), ErrChimeBusy)

	samples := output.drain()
	assert.Equal(t, chimeSampleRate.N(480*time.Millisecond), samples)
	assert.False(t, chime.Playing())

	require.NoError(t, chime.Play())
	assert.Equal(t, 1, output.initCalls)
}

func TestChimeMuted(t *testing.T) {
	output := &fakeOutput{}
	chime := NewChimeWithOutput(ChimeConfig{Muted: true}, output)

	assert.ErrorIs(t, chime.Play(), ErrChimeMuted)
	assert.Empty(t, output.queued)

	chime.UpdateConfig(ChimeConfig{})
	assert.NoError(t, chime.Play())
}

func TestChimeReportsInitFailure(t *testing.T) {
	output := &fakeOutput{initErr: errors.New("no device")}
	chime := NewChimeWithOutput(ChimeConfig{}, output)

	err := chime.Play()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no device")
	assert.False(t, chime.Playing())
}

func TestChimeMissingSoundFile(t *testing.T) {
	output := &fakeOutput{}
	chime := NewChimeWithOutput(ChimeConfig{SoundFile: filepath.Join(t.TempDir(), "missing.wav")}, output)

	err := chime.Play()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sound file")
	assert.False(t, chime.Playing())
}
