package constants

import "time"

// Audio Output
const (
	AudioSampleRate   = 44100
	AudioBufferPeriod = 100 * time.Millisecond
	AudioMasterVolume = 0.6
)

// Cue Timing
const (
	HitSoundDuration    = 60 * time.Millisecond
	HitSoundAttack      = 2 * time.Millisecond
	HitSoundRelease     = 40 * time.Millisecond
	BounceSoundDuration = 25 * time.Millisecond
	BounceSoundAttack   = 1 * time.Millisecond
	BounceSoundRelease  = 15 * time.Millisecond
	MissSoundDuration   = 250 * time.Millisecond
	MissSoundAttack     = 5 * time.Millisecond
	MissSoundRelease    = 120 * time.Millisecond
	LevelNoteDuration   = 70 * time.Millisecond
	GameOverNoteLength  = 220 * time.Millisecond
	ToneAttack          = 3 * time.Millisecond
	ToneRelease         = 50 * time.Millisecond
)
