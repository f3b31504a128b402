package config

import (
	"strconv"
	"time"
)

// Environment variable names
const (
	EnvDebug          = "GESTURE_PONG_DEBUG"
	EnvTickRate       = "GESTURE_PONG_TICK_RATE"
	EnvDropout        = "GESTURE_PONG_DROPOUT"
	EnvSource         = "GESTURE_PONG_SOURCE"
	EnvListen         = "GESTURE_PONG_LISTEN"
	EnvStaleAfter     = "GESTURE_PONG_STALE_AFTER"
	EnvMirror         = "GESTURE_PONG_MIRROR"
	EnvNarration      = "GESTURE_PONG_NARRATION"
	EnvVoice          = "GESTURE_PONG_VOICE"
	EnvAudioEnabled   = "GESTURE_PONG_AUDIO_ENABLED"
	EnvMuted          = "GESTURE_PONG_MUTED"
	EnvMasterVolume   = "GESTURE_PONG_MASTER_VOLUME" // 0-100
	EnvScoreboardPath = "GESTURE_PONG_DB"
)

// ApplyEnv overlays variables that are set and parse; malformed values are ignored
func (c *Config) ApplyEnv(getenv func(string) string) {
	setBool := func(key string, dst *bool) {
		if v := getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setBool(EnvDebug, &c.Log.Debug)
	setBool(EnvMirror, &c.Vision.Mirror)
	setBool(EnvNarration, &c.Narration.Enabled)
	setBool(EnvAudioEnabled, &c.Audio.Enabled)
	setBool(EnvMuted, &c.Audio.Muted)

	setString(EnvDropout, &c.Game.Dropout)
	setString(EnvSource, &c.Vision.Source)
	setString(EnvListen, &c.Vision.Listen)
	setString(EnvVoice, &c.Narration.Backend)
	setString(EnvScoreboardPath, &c.Scoreboard.Path)

	if v := getenv(EnvTickRate); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Game.TickRate = n
		}
	}
	if v := getenv(EnvStaleAfter); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Vision.StaleAfter = d
		}
	}
	if v := getenv(EnvMasterVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			vol := float64(n) / 100.0
			if vol < 0 {
				vol = 0
			}
			if vol > 1 {
				vol = 1
			}
			c.Audio.Volume = vol
		}
	}
}
