package platform

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

const chimeSampleRate = beep.SampleRate(44100)

var (
	// ErrChimeBusy indicates a previous alert sound is still playing.
	ErrChimeBusy = errors.New("chime already playing")
	// ErrChimeMuted indicates sound is disabled in settings.
	ErrChimeMuted = errors.New("chime muted")
)

// ChimeConfig controls the alert sound.
type ChimeConfig struct {
	Volume    float64
	SoundFile string
	Muted     bool
}

// AudioOutput plays streamers on an audio device.
type AudioOutput interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(streamers ...beep.Streamer)
}

type speakerOutput struct{}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(streamers ...beep.Streamer) {
	speaker.Play(streamers...)
}

// Chime plays the alert sound. At most one playback is in flight.
type Chime struct {
	mu      sync.Mutex
	output  AudioOutput
	config  ChimeConfig
	ready   bool
	playing bool
	custom  *beep.Buffer
	loaded  string
}

// NewChime creates a chime on the default speaker.
func NewChime(config ChimeConfig) *Chime {
	return NewChimeWithOutput(config, speakerOutput{})
}

// NewChimeWithOutput creates a chime on the given output.
func NewChimeWithOutput(config ChimeConfig, output AudioOutput) *Chime {
	return &Chime{
		output: output,
		config: config,
	}
}

// UpdateConfig replaces the sound settings.
func (chime *Chime) UpdateConfig(config ChimeConfig) {
	chime.mu.Lock()
	chime.config = config
	chime.mu.Unlock()
}

// Playing reports whether a sound is in flight.
func (chime *Chime) Playing() bool {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	return chime.playing
}

// Play starts the alert sound. It returns ErrChimeBusy when a previous sound
// has not finished and ErrChimeMuted when sound is disabled.
func (chime *Chime) Play() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if chime.config.Muted {
		return ErrChimeMuted
	}
	if chime.playing {
		return ErrChimeBusy
	}
	if !chime.ready {
		if err := chime.output.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		chime.ready = true
	}

	sound, err := chime.soundLocked()
	if err != nil {
		return err
	}

	chime.playing = true
	volume := &effects.Volume{
		Streamer: sound,
		Base:     2,
		Volume:   chime.config.Volume,
	}
	chime.output.Play(beep.Seq(volume, beep.Callback(func() {
		chime.mu.Lock()
		chime.playing = false
		chime.mu.Unlock()
	})))
	return nil
}

func (chime *Chime) soundLocked() (beep.Streamer, error) {
	if chime.config.SoundFile == "" {
		return defaultChime(), nil
	}
	if chime.custom == nil || chime.loaded != chime.config.SoundFile {
		buffer, err := loadWav(chime.config.SoundFile)
		if err != nil {
			return nil, err
		}
		chime.custom = buffer
		chime.loaded = chime.config.SoundFile
	}
	return chime.custom.Streamer(0, chime.custom.Len()), nil
}

func loadWav(path string) (*beep.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound file: %w", err)
	}
	defer file.Close()

	streamer, format, err := wav.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode sound file: %w", err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != chimeSampleRate {
		source = beep.Resample(4, format.SampleRate, chimeSampleRate, streamer)
	}

	buffer := beep.NewBuffer(beep.Format{SampleRate: chimeSampleRate, NumChannels: 2, Precision: 2})
	buffer.Append(source)
	return buffer, nil
}

// defaultChime is two short 880 Hz beeps.
func defaultChime() beep.Streamer {
	beepLength := 180 * time.Millisecond
	return beep.Seq(
		tone(880, beepLength),
		beep.Silence(chimeSampleRate.N(120*time.Millisecond)),
		tone(880, beepLength),
	)
}

func tone(frequency float64, length time.Duration) beep.Streamer {
	total := chimeSampleRate.N(length)
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		count := 0
		for index := range samples {
			if position >= total {
				break
			}
			value := 0.4 * math.Sin(2*math.Pi*frequency*float64(position)/float64(chimeSampleRate))
			samples[index][0] = value
			samples[index][1] = value
			position++
			count++
		}
		return count, true
	})
}
