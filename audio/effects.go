package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/gesture-pong/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a wave streamer that ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s; the sustain fills whatever duration attack and release leave
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if remaining := e.totalSamples - e.position; remaining < e.releaseSamples {
			vol = math.Min(vol, float64(remaining)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain; math.Log2(0) is -Inf so zero maps to Silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, constants.ToneAttack, constants.ToneRelease, rate)
}

// CreateHitSound is a short bright blip
func CreateHitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(660, constants.HitSoundDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, constants.HitSoundDuration, constants.HitSoundAttack, constants.HitSoundRelease, rate)
	return newVolume(shaped, 0.5*vol)
}

// CreateBounceSound is a dry tick
func CreateBounceSound(rate beep.SampleRate, vol float64) beep.Streamer {
	noise := NewOscillator(0, constants.BounceSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, constants.BounceSoundDuration, constants.BounceSoundAttack, constants.BounceSoundRelease, rate)
	return newVolume(shaped, 0.4*vol)
}

// CreateMissSound is a low saw buzz
func CreateMissSound(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(110, constants.MissSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constants.MissSoundDuration, constants.MissSoundAttack, constants.MissSoundRelease, rate)
	return newVolume(shaped, 0.6*vol)
}

// CreateLevelUpSound is a rising major arpeggio (C5 E5 G5 C6)
func CreateLevelUpSound(rate beep.SampleRate, vol float64) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.50}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		seq[i] = tone(f, constants.LevelNoteDuration, WaveSine, rate)
	}
	return newVolume(beep.Seq(seq...), 0.7*vol)
}

// CreateGameOverSound is three descending tones with a sub-octave under each
func CreateGameOverSound(rate beep.SampleRate, vol float64) beep.Streamer {
	notes := []float64{392.00, 311.13, 261.63}
	seq := make([]beep.Streamer, len(notes))
	for i, f := range notes {
		seq[i] = beep.Mix(
			newVolume(tone(f, constants.GameOverNoteLength, WaveSine, rate), 0.7),
			newVolume(tone(f/2, constants.GameOverNoteLength, WaveSine, rate), 0.3),
		)
	}
	return newVolume(beep.Seq(seq...), 0.8*vol)
}

// GetSoundEffect returns a fresh streamer for the cue, nil for unknown types
func GetSoundEffect(st SoundType, rate beep.SampleRate, vol float64) beep.Streamer {
	switch st {
	case SoundHit:
		return CreateHitSound(rate, vol)
	case SoundBounce:
		return CreateBounceSound(rate, vol)
	case SoundMiss:
		return CreateMissSound(rate, vol)
	case SoundLevelUp:
		return CreateLevelUpSound(rate, vol)
	case SoundGameOver:
		return CreateGameOverSound(rate, vol)
	default:
		return nil
	}
}
