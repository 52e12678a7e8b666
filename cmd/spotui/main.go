package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"spotui/internal/catalog"
	"spotui/internal/domain"
	"spotui/internal/logger"
	"spotui/internal/playback"
	"spotui/internal/ports"
	"spotui/internal/services/audio"
	"spotui/internal/services/config"
	"spotui/internal/services/player"
	"spotui/internal/services/storage"
	"spotui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spotui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	volume := flag.Float64("volume", -1, "initial volume between 0 and 1 (overrides config)")
	backend := flag.String("backend", "", "audio backend: beep or mpv (overrides config)")
	flag.Parse()

	configDir := config.Dir()
	cfg, err := config.NewViperConfigService(configDir).Load()
	if err != nil {
		return err
	}
	if *volume >= 0 {
		cfg.Volume = min(*volume, 1)
	}
	if *backend != "" {
		cfg.Audio.Backend = strings.ToLower(*backend)
	}

	if _, err := logger.Init(configDir, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "spotui: logging disabled: %v\n", err)
	}
	defer logger.Close()

	source, err := storage.OpenCatalog(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("could not open catalog: %w", err)
	}
	defer source.Close()

	tracks, err := source.Tracks()
	if err != nil {
		return fmt.Errorf("could not read catalog: %w", err)
	}

	resource := newAudioResource(cfg.Audio)
	defer resource.Close()

	controller := playback.NewController(tracks, resource, cfg.Volume)
	model := ui.InitialModel(controller, catalog.NewLibrary(tracks), resource.Events(), cfg.Controls)

	logger.Log.Info().
		Str("backend", cfg.Audio.Backend).
		Int("tracks", len(tracks)).
		Msg("Starting spotui")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if len(tracks) == 0 {
		go p.Send(ports.NoticeMsg{Text: "The catalog is empty"})
	}
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("there was an error: %w", err)
	}
	return nil
}

func newAudioResource(cfg domain.AudioConfig) ports.AudioResource {
	if cfg.Backend == config.BackendMpv {
		return player.NewMpvPlayer(cfg.MpvSocket)
	}
	return audio.NewBeepPlayer()
}
