// Package config loads game settings from defaults, an optional TOML file and
// GESTURE_PONG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/gesture"
)

// DefaultPath is read when no explicit path is given; its absence is not an error
const DefaultPath = "gesture-pong.toml"

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Vision source kinds
const (
	SourcePointer   = "pointer"
	SourceWebSocket = "websocket"
)

// Config is the full runtime configuration
type Config struct {
	Game       GameConfig       `toml:"game"`
	Vision     VisionConfig     `toml:"vision"`
	Narration  NarrationConfig  `toml:"narration"`
	Audio      AudioConfig      `toml:"audio"`
	Scoreboard ScoreboardConfig `toml:"scoreboard"`
	Log        LogConfig        `toml:"log"`
}

// GameConfig holds geometry and rules in logical units
type GameConfig struct {
	WindowWidth    int    `toml:"window_width"`
	WindowHeight   int    `toml:"window_height"`
	TickRate       int    `toml:"tick_rate"`
	PaddleWidth    int    `toml:"paddle_width"`
	PaddleHeight   int    `toml:"paddle_height"`
	BallRadius     int    `toml:"ball_radius"`
	BallSpeed      int    `toml:"ball_speed"`
	StartingLives  int    `toml:"starting_lives"`
	PointsPerLevel int    `toml:"points_per_level"`
	Dropout        string `toml:"dropout"` // hold | reset
	FSMPath        string `toml:"fsm_path"`
}

// VisionConfig selects and tunes the hand source
type VisionConfig struct {
	Source        string        `toml:"source"` // pointer | websocket
	Listen        string        `toml:"listen"`
	StaleAfter    time.Duration `toml:"stale_after"`
	MinConfidence float64       `toml:"min_confidence"`
	Mirror        bool          `toml:"mirror"`
	Hand          string        `toml:"hand"` // any | Left | Right
}

// NarrationConfig tunes the speech collaborator
type NarrationConfig struct {
	Enabled   bool          `toml:"enabled"`
	Backend   string        `toml:"backend"` // auto | log | a TTS command name
	Timeout   time.Duration `toml:"timeout"`
	QueueSize int           `toml:"queue_size"`
}

// AudioConfig tunes the sound cues
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	Muted      bool    `toml:"muted"`  // start muted, toggled in game
	Volume     float64 `toml:"volume"` // 0..1
	SampleRate int     `toml:"sample_rate"`
}

// ScoreboardConfig enables persistence when Path is set
type ScoreboardConfig struct {
	Path string `toml:"path"`
}

// LogConfig controls the debug log file
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Dir   string `toml:"dir"`
}

// Default returns the classic game settings
func Default() *Config {
	return &Config{
		Game: GameConfig{
			WindowWidth:    constants.WindowWidth,
			WindowHeight:   constants.WindowHeight,
			TickRate:       constants.TickRate,
			PaddleWidth:    constants.PaddleWidth,
			PaddleHeight:   constants.PaddleHeight,
			BallRadius:     constants.BallRadius,
			BallSpeed:      constants.BallSpeed,
			StartingLives:  constants.StartingLives,
			PointsPerLevel: constants.PointsPerLevel,
			Dropout:        gesture.DropoutHold.String(),
		},
		Vision: VisionConfig{
			Source:        SourcePointer,
			Listen:        "127.0.0.1:8765",
			StaleAfter:    250 * time.Millisecond,
			MinConfidence: 0.5,
			Mirror:        true,
			Hand:          "any",
		},
		Narration: NarrationConfig{
			Enabled:   true,
			Backend:   "auto",
			Timeout:   constants.NarrationLineTimeout,
			QueueSize: constants.NarrationQueueSize,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.6,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load returns defaults overlaid with the TOML file at path and the environment
// An empty path tries DefaultPath and tolerates its absence
// The result is not validated; callers apply their own overrides, then Validate
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := path == ""
	if optional {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !(optional && errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	g := c.Game
	var problems []string
	check := func(bad bool, format string, args ...any) {
		if bad {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	playfield := g.WindowWidth * constants.PlayfieldNumerator / constants.PlayfieldDenominator
	check(g.WindowWidth <= 0 || g.WindowHeight <= 0, "window %dx%d", g.WindowWidth, g.WindowHeight)
	check(g.TickRate <= 0 || g.TickRate > 1000, "tick_rate %d", g.TickRate)
	check(g.PaddleWidth <= 0 || g.PaddleWidth > playfield, "paddle_width %d for playfield %d", g.PaddleWidth, playfield)
	check(g.PaddleHeight <= 0, "paddle_height %d", g.PaddleHeight)
	check(g.BallRadius <= 0, "ball_radius %d", g.BallRadius)
	check(g.BallSpeed <= 0, "ball_speed %d", g.BallSpeed)
	check(g.StartingLives <= 0, "starting_lives %d", g.StartingLives)
	check(g.PointsPerLevel <= 0, "points_per_level %d", g.PointsPerLevel)
	check(g.WindowHeight <= g.PaddleHeight+constants.PaddleBottomMargin, "window_height %d leaves no room for the paddle", g.WindowHeight)
	if _, err := gesture.ParseDropoutPolicy(g.Dropout); err != nil {
		problems = append(problems, err.Error())
	}

	v := c.Vision
	check(v.Source != SourcePointer && v.Source != SourceWebSocket, "vision.source %q", v.Source)
	check(v.Source == SourceWebSocket && v.Listen == "", "vision.listen is empty")
	check(v.StaleAfter <= 0, "vision.stale_after %v", v.StaleAfter)
	check(v.MinConfidence < 0 || v.MinConfidence > 1, "vision.min_confidence %v", v.MinConfidence)
	check(v.Hand != "any" && v.Hand != "Left" && v.Hand != "Right", "vision.hand %q", v.Hand)

	check(c.Narration.Timeout <= 0, "narration.timeout %v", c.Narration.Timeout)
	check(c.Narration.QueueSize <= 0, "narration.queue_size %d", c.Narration.QueueSize)
	check(c.Audio.Volume < 0 || c.Audio.Volume > 1, "audio.volume %v", c.Audio.Volume)
	check(c.Audio.SampleRate <= 0, "audio.sample_rate %d", c.Audio.SampleRate)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// TickInterval is the duration of one tick
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Game.TickRate)
}

// DropoutPolicy returns the parsed policy; Validate guarantees it parses
func (c *Config) DropoutPolicy() gesture.DropoutPolicy {
	p, _ := gesture.ParseDropoutPolicy(c.Game.Dropout)
	return p
}
