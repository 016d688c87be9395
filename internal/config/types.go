// SPDX-License-Identifier: EPL-2.0

package config

// Config is the complete configuration of a render run.
type Config struct {
	Input     string `mapstructure:"input"`
	Output    string `mapstructure:"output"`
	Recursive bool   `mapstructure:"recursive"`

	Format       string  `mapstructure:"format"`
	SampleFormat string  `mapstructure:"sample_format"`
	SampleRate   int     `mapstructure:"sample_rate"`
	Stereo       bool    `mapstructure:"stereo"`
	Channels     bool    `mapstructure:"channels"`
	Instruments  bool    `mapstructure:"instruments"`
	Full         bool    `mapstructure:"full"`
	Panning      float32 `mapstructure:"panning"`
	// PanningSet reports whether panning was given at all; unset means the
	// engine's own panning is kept.
	PanningSet bool `mapstructure:"-"`

	Progress     bool    `mapstructure:"progress"`
	Workers      int     `mapstructure:"workers"`
	SafetyMargin float64 `mapstructure:"safety_margin"`

	Vorbis VorbisConfig `mapstructure:"vorbis"`
	MP3    MP3Config    `mapstructure:"mp3"`
	Opus   OpusConfig   `mapstructure:"opus"`
	Engine EngineConfig `mapstructure:"engine"`
	Log    LogConfig    `mapstructure:"log"`
}

// VorbisConfig holds the Ogg Vorbis settings. Bitrates are in kbit/s.
type VorbisConfig struct {
	Mode       string  `mapstructure:"mode"`
	Bitrate    int     `mapstructure:"bitrate"`
	MaxBitrate int     `mapstructure:"max_bitrate"`
	Quality    float32 `mapstructure:"quality"`
}

// MP3Config holds the MP3 settings.
type MP3Config struct {
	Bitrate int `mapstructure:"bitrate"` // kbit/s
}

// OpusConfig holds the Opus settings.
type OpusConfig struct {
	Bitrate int `mapstructure:"bitrate"` // kbit/s
}

// EngineConfig holds settings of the synthesis engine.
type EngineConfig struct {
	// Concurrent lets renders call the engine in parallel. Off by default:
	// every call is serialized.
	Concurrent bool `mapstructure:"concurrent"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
