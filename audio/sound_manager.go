package audio

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/events"
)

// output is the device the mixer plays into
type output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (speakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (speakerOutput) Lock()                { speaker.Lock() }
func (speakerOutput) Unlock()              { speaker.Unlock() }

// SoundManager mixes one-shot cues into the speaker
// Without an audio device every call is a silent no-op
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	out         output
	mixer       *beep.Mixer
	initialized bool
	muted       atomic.Bool
	played      atomic.Int64
}

// DefaultConfig enables audio at the default volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: constants.AudioMasterVolume,
		SampleRate:   constants.AudioSampleRate,
	}
}

// NewSoundManager creates a manager bound to the system speaker
func NewSoundManager(cfg Config) *SoundManager {
	return newSoundManager(cfg, speakerOutput{})
}

func newSoundManager(cfg Config, out output) *SoundManager {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = constants.AudioSampleRate
	}
	sm := &SoundManager{
		cfg:   cfg,
		out:   out,
		mixer: &beep.Mixer{},
	}
	sm.muted.Store(!cfg.Enabled || cfg.Muted)
	return sm
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := sm.out.Init(rate, rate.N(constants.AudioBufferPeriod)); err != nil {
		return err
	}

	sm.out.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops pending cues; beep has no speaker close, an empty mixer keeps it silent
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.initialized = false
}

// Play queues a cue, reporting whether it was mixed in
func (sm *SoundManager) Play(st SoundType) bool {
	if sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	s := GetSoundEffect(st, beep.SampleRate(sm.cfg.SampleRate), sm.cfg.MasterVolume)
	if s == nil {
		return false
	}

	sm.out.Lock()
	sm.mixer.Add(s)
	sm.out.Unlock()
	sm.played.Add(1)
	return true
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// IsMuted reports the mute state
func (sm *SoundManager) IsMuted() bool { return sm.muted.Load() }

// Played counts cues mixed in since creation
func (sm *SoundManager) Played() int64 { return sm.played.Load() }

// Name implements service.Service
func (sm *SoundManager) Name() string { return "audio" }

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string { return nil }

// Start implements service.Service
// A missing audio device degrades to silence, not a startup error
func (sm *SoundManager) Start(context.Context) error {
	if !sm.cfg.Enabled {
		return nil
	}
	if err := sm.Initialize(); err != nil {
		log.Printf("audio: disabled: %v", err)
	}
	return nil
}

// Stop implements service.Service
func (sm *SoundManager) Stop() error {
	sm.Cleanup()
	return nil
}

var cueFor = map[events.EventType]SoundType{
	events.EventPaddleHit:  SoundHit,
	events.EventWallBounce: SoundBounce,
	events.EventMiss:       SoundMiss,
	events.EventLevelUp:    SoundLevelUp,
	events.EventGameOver:   SoundGameOver,
}

// EventTypes implements events.Handler
func (sm *SoundManager) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventPaddleHit,
		events.EventWallBounce,
		events.EventMiss,
		events.EventLevelUp,
		events.EventGameOver,
	}
}

// HandleEvent implements events.Handler
func (sm *SoundManager) HandleEvent(_ *engine.Session, ev events.GameEvent) {
	if st, ok := cueFor[ev.Type]; ok {
		sm.Play(st)
	}
}
