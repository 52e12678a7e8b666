package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spotui/internal/domain"
	"spotui/internal/logger"
	"spotui/internal/ports"

	"github.com/spf13/viper"
)

const (
	BackendBeep = "beep"
	BackendMpv  = "mpv"
)

type ViperConfigService struct {
	v   *viper.Viper
	dir string
}

// Dir returns the spotui directory under the user config dir, or "" if there is none.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Could not find user config directory, using current directory")
		return ""
	}
	return filepath.Join(configDir, "spotui")
}

func NewViperConfigService(dir string) ports.ConfigService {
	v := viper.New()

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Log.Error().Err(err).Msg("Could not create spotui config directory")
		} else {
			v.AddConfigPath(dir)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")

	v.SetDefault("volume", 0.7)
	v.SetDefault("audio.backend", BackendBeep)
	v.SetDefault("audio.mpvSocket", "/tmp/spotui-mpvsocket")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.import", "")
	v.SetDefault("controls.seekStep", 5.0)
	v.SetDefault("controls.volumeStep", 0.05)
	v.SetDefault("log.level", "info")

	return &ViperConfigService{v: v, dir: dir}
}

func (s *ViperConfigService) Load() (domain.Config, error) {
	var cfg domain.Config

	if err := s.v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return cfg, fmt.Errorf("could not read config: %w", err)
		}
		logger.Log.Info().Msg("Config file not found, creating with default values.")
		if s.dir != "" {
			if err := s.v.SafeWriteConfigAs(filepath.Join(s.dir, "config.yml")); err != nil {
				logger.Log.Warn().Err(err).Msg("Could not write default config")
			}
		}
	}

	if err := s.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("could not decode config: %w", err)
	}

	return normalize(cfg), nil
}

func normalize(cfg domain.Config) domain.Config {
	if cfg.Volume < 0 {
		cfg.Volume = 0
	} else if cfg.Volume > 1 {
		cfg.Volume = 1
	}

	cfg.Audio.Backend = strings.ToLower(strings.TrimSpace(cfg.Audio.Backend))
	if cfg.Audio.Backend != BackendMpv {
		cfg.Audio.Backend = BackendBeep
	}

	if cfg.Controls.SeekStep <= 0 {
		cfg.Controls.SeekStep = 5
	}
	if cfg.Controls.VolumeStep <= 0 || cfg.Controls.VolumeStep > 1 {
		cfg.Controls.VolumeStep = 0.05
	}
	return cfg
}
