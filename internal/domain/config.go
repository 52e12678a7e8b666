package domain

type Config struct {
	Volume   float64        `mapstructure:"volume"`
	Audio    AudioConfig    `mapstructure:"audio"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Controls ControlsConfig `mapstructure:"controls"`
	Log      LogConfig      `mapstructure:"log"`
}

type AudioConfig struct {
	Backend   string `mapstructure:"backend"`
	MpvSocket string `mapstructure:"mpvSocket"`
}

type CatalogConfig struct {
	Path   string `mapstructure:"path"`
	Import string `mapstructure:"import"`
}

type ControlsConfig struct {
	SeekStep   float64 `mapstructure:"seekStep"`
	VolumeStep float64 `mapstructure:"volumeStep"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}
