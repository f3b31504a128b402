package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gesture-pong/audio"
	"github.com/lixenwraith/gesture-pong/config"
	"github.com/lixenwraith/gesture-pong/constants"
	"github.com/lixenwraith/gesture-pong/core"
	"github.com/lixenwraith/gesture-pong/engine"
	"github.com/lixenwraith/gesture-pong/input"
	"github.com/lixenwraith/gesture-pong/narration"
	"github.com/lixenwraith/gesture-pong/physics"
	"github.com/lixenwraith/gesture-pong/protocol"
	"github.com/lixenwraith/gesture-pong/render"
	"github.com/lixenwraith/gesture-pong/scoreboard"
	"github.com/lixenwraith/gesture-pong/service"
	"github.com/lixenwraith/gesture-pong/status"
	"github.com/lixenwraith/gesture-pong/vision"
)

var (
	configFlag      = flag.String("config", "", "Path to a TOML config file (default gesture-pong.toml if present)")
	debugFlag       = flag.Bool("debug", false, "Write a debug log under the log directory")
	sourceFlag      = flag.String("source", "", "Hand source: pointer or websocket")
	listenFlag      = flag.String("listen", "", "Listen address for the websocket landmark feed")
	dbFlag          = flag.String("db", "", "SQLite scoreboard path, empty disables persistence")
	muteFlag        = flag.Bool("mute", false, "Start with sound cues muted (m toggles)")
	noNarrationFlag = flag.Bool("no-narration", false, "Disable spoken narration")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gesture-pong: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Log.Debug, cfg.Log.Dir); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		if errors.Is(err, vision.ErrInputUnavailable) {
			fmt.Fprintf(os.Stderr, "gesture-pong: hand tracking unavailable: %v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "gesture-pong: %v\n", err)
		}
		os.Exit(1)
	}
}

// loadConfig layers file, environment and flags, validating the result once
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags overlays explicitly set command-line flags on the loaded config
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Log.Debug = *debugFlag
		case "source":
			cfg.Vision.Source = *sourceFlag
		case "listen":
			cfg.Vision.Listen = *listenFlag
		case "db":
			cfg.Scoreboard.Path = *dbFlag
		case "mute":
			cfg.Audio.Muted = *muteFlag
		case "no-narration":
			cfg.Narration.Enabled = !*noNarrationFlag
		}
	})
}

func run(cfg *config.Config) error {
	reg := status.NewRegistry()
	window := engine.Size{Width: cfg.Game.WindowWidth, Height: cfg.Game.WindowHeight}
	field := physics.Playfield{
		Width:  window.Width * constants.PlayfieldNumerator / constants.PlayfieldDenominator,
		Height: window.Height,
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()
	core.SetCrashScreen(screen)

	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	// Fini runs before the error is printed by main
	defer screen.Fini()

	presenter := render.NewPresenter(screen)

	var (
		hand    engine.HandSource
		handSvc service.Service
		pointer input.PointerSink
	)
	switch cfg.Vision.Source {
	case config.SourceWebSocket:
		feed := vision.NewWebSocketFeed(vision.FeedConfig{
			Listen:     cfg.Vision.Listen,
			StaleAfter: cfg.Vision.StaleAfter,
			Mirror:     cfg.Vision.Mirror,
			Selector: protocol.Selector{
				Handedness:    cfg.Vision.Hand,
				MinConfidence: cfg.Vision.MinConfidence,
			},
			TickHz: cfg.Game.TickRate,
			Status: reg,
		})
		hand, handSvc = feed, feed
	default:
		cols, rows := screen.Size()
		src := vision.NewPointerSource(render.NewLayout(cols, rows, window, field).FieldColumns())
		hand, handSvc, pointer = src, src, src
	}

	sounds := audio.NewSoundManager(audio.Config{
		Enabled:      cfg.Audio.Enabled,
		Muted:        cfg.Audio.Muted,
		MasterVolume: cfg.Audio.Volume,
		SampleRate:   cfg.Audio.SampleRate,
	})

	hub := service.NewHub()
	services := []service.Service{handSvc, sounds}

	var dispatcher *narration.Dispatcher
	if cfg.Narration.Enabled {
		narrator, err := narration.NewNarrator(cfg.Narration.Backend)
		if err != nil {
			return fmt.Errorf("narration: %w", err)
		}
		if en, ok := narrator.(*narration.ExecNarrator); ok {
			log.Printf("narration: speaking through %s", en.Backend().Name)
		}
		dispatcher = narration.NewDispatcher(narrator, cfg.Narration.QueueSize, cfg.Narration.Timeout, reg)
		services = append(services, dispatcher)
	}

	var (
		recorder *scoreboard.Recorder
		best     int
	)
	if cfg.Scoreboard.Path != "" {
		store, err := scoreboard.Open(cfg.Scoreboard.Path)
		if err != nil {
			return fmt.Errorf("scoreboard: %w", err)
		}
		if best, err = store.Best(context.Background()); err != nil {
			store.Close()
			return fmt.Errorf("scoreboard: %w", err)
		}
		recorder = scoreboard.NewRecorder(store, reg)
		services = append(services, recorder)
	}

	var muter input.Muter
	if cfg.Audio.Enabled {
		muter = sounds
	}
	inputs := input.NewHandler(screen, presenter, pointer, muter)
	services = append(services, inputs)

	for _, svc := range services {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := hub.StartAll(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer hub.StopAll()
	log.Printf("services started: %v", hub.Started())

	ctrl, err := engine.NewController(engine.Options{
		Window: window,
		Field:  field,
		Geometry: physics.Geometry{
			PaddleWidth:        cfg.Game.PaddleWidth,
			PaddleHeight:       cfg.Game.PaddleHeight,
			PaddleBottomMargin: physics.DefaultGeometry().PaddleBottomMargin,
			PaddleSpeed:        physics.DefaultGeometry().PaddleSpeed,
			BallRadius:         cfg.Game.BallRadius,
		},
		Rules: physics.Rules{
			BallSpeed:      cfg.Game.BallSpeed,
			StartingLives:  cfg.Game.StartingLives,
			StartingLevel:  physics.DefaultRules().StartingLevel,
			PointsPerLevel: cfg.Game.PointsPerLevel,
		},
		Dropout:      cfg.DropoutPolicy(),
		TickInterval: cfg.TickInterval(),
		GraphPath:    cfg.Game.FSMPath,
		Best:         best,
		Hand:         hand,
		Input:        inputs,
		Presenter:    presenter,
		Status:       reg,
	})
	if err != nil {
		return err
	}
	ctrl.Register(sounds)
	if dispatcher != nil {
		ctrl.Register(dispatcher)
	}
	if recorder != nil {
		ctrl.Register(recorder)
	}

	if err := ctrl.Run(ctx); err != nil {
		return err
	}
	log.Printf("session ended: %s, score %d", ctrl.Phase(), ctrl.Session().Tally.Score)
	return nil
}
