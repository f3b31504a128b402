// Package audio plays short synthesized cues for game events through beep
package audio

// SoundType identifies a cue
type SoundType int

const (
	SoundHit      SoundType = iota // Paddle hit blip
	SoundBounce                    // Wall bounce tick
	SoundMiss                      // Lost ball buzz
	SoundLevelUp                   // Rising arpeggio
	SoundGameOver                  // Descending tones
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"hit", "bounce", "miss", "level_up", "game_over"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Config controls the sound manager
type Config struct {
	Enabled      bool
	Muted        bool    // start muted; ToggleMute unmutes
	MasterVolume float64 // 0.0-1.0
	SampleRate   int
}
