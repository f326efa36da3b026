// Package config loads reader settings from defaults, flags,
// environment (SKIM_*) and an optional config file, in that order of
// increasing precedence for the overlapping sources viper layers.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/metcalfc/skim/internal/rsvp"
)

type Config struct {
	Reading ReadingConfig `mapstructure:"reading"`
	Pauses  PausesConfig  `mapstructure:"pauses"`
	Display DisplayConfig `mapstructure:"display"`
	App     AppConfig     `mapstructure:"app"`
}

type ReadingConfig struct {
	WPM              int     `mapstructure:"wpm"`
	WordsPerSlide    int     `mapstructure:"words_per_slide"`
	Algorithm        string  `mapstructure:"algorithm"`
	MinSlideDuration float64 `mapstructure:"min_slide_duration"`
	FreqShort        float64 `mapstructure:"freq_short"`
	FreqLong         float64 `mapstructure:"freq_long"`
}

type PausesConfig struct {
	Comma          bool    `mapstructure:"comma"`
	CommaDelay     float64 `mapstructure:"comma_delay"`
	Period         bool    `mapstructure:"period"`
	PeriodDelay    float64 `mapstructure:"period_delay"`
	Paragraph      bool    `mapstructure:"paragraph"`
	ParagraphDelay float64 `mapstructure:"paragraph_delay"`
}

type DisplayConfig struct {
	Font     string  `mapstructure:"font"`
	FontSize float64 `mapstructure:"font_size"`
}

type AppConfig struct {
	Resume   bool   `mapstructure:"resume"`
	LogLevel string `mapstructure:"log_level"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	s := rsvp.DefaultSettings()
	return Config{
		Reading: ReadingConfig{
			WPM:              s.WPM,
			WordsPerSlide:    s.WordsPerSlide,
			Algorithm:        string(s.Algorithm),
			MinSlideDuration: s.MinSlideDuration,
			FreqShort:        s.WordFreqShortDuration,
			FreqLong:         s.WordFreqLongDuration,
		},
		Pauses: PausesConfig{
			Comma:          s.PauseAfterComma,
			CommaDelay:     s.PauseAfterCommaDelay,
			Period:         s.PauseAfterPeriod,
			PeriodDelay:    s.PauseAfterPeriodDelay,
			Paragraph:      s.PauseAfterParagraph,
			ParagraphDelay: s.PauseAfterParagraphDelay,
		},
		Display: DisplayConfig{
			Font:     s.Font,
			FontSize: s.FontSize,
		},
		App: AppConfig{
			Resume:   true,
			LogLevel: "warn",
		},
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.IntP("wpm", "w", defaults.Reading.WPM, "Words per minute")
	fs.Int("words-per-slide", defaults.Reading.WordsPerSlide, "Words shown per slide (1-5)")
	fs.String("algorithm", defaults.Reading.Algorithm, "Pacing algorithm: basic|wordLength|wordFrequency")
	fs.Float64("min-slide-duration", defaults.Reading.MinSlideDuration, "Minimum slide duration in ms")
	fs.Bool("pause-comma", defaults.Pauses.Comma, "Pause after commas")
	fs.Bool("pause-period", defaults.Pauses.Period, "Pause after sentence punctuation")
	fs.Bool("pause-paragraph", defaults.Pauses.Paragraph, "Pause at paragraph breaks")
	fs.String("font", defaults.Display.Font, "Display font name")
	fs.Float64("font-size", defaults.Display.FontSize, "Display font size")
	fs.Bool("resume", defaults.App.Resume, "Resume from the saved reading position")
	fs.String("log-level", defaults.App.LogLevel, "Log level: debug|info|warn|error")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("SKIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("skim")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("reading.wpm", c.Reading.WPM)
	v.SetDefault("reading.words_per_slide", c.Reading.WordsPerSlide)
	v.SetDefault("reading.algorithm", c.Reading.Algorithm)
	v.SetDefault("reading.min_slide_duration", c.Reading.MinSlideDuration)
	v.SetDefault("reading.freq_short", c.Reading.FreqShort)
	v.SetDefault("reading.freq_long", c.Reading.FreqLong)
	v.SetDefault("pauses.comma", c.Pauses.Comma)
	v.SetDefault("pauses.comma_delay", c.Pauses.CommaDelay)
	v.SetDefault("pauses.period", c.Pauses.Period)
	v.SetDefault("pauses.period_delay", c.Pauses.PeriodDelay)
	v.SetDefault("pauses.paragraph", c.Pauses.Paragraph)
	v.SetDefault("pauses.paragraph_delay", c.Pauses.ParagraphDelay)
	v.SetDefault("display.font", c.Display.Font)
	v.SetDefault("display.font_size", c.Display.FontSize)
	v.SetDefault("app.resume", c.App.Resume)
	v.SetDefault("app.log_level", c.App.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("reading.wpm", "wpm")
	v.RegisterAlias("reading.words_per_slide", "words-per-slide")
	v.RegisterAlias("reading.algorithm", "algorithm")
	v.RegisterAlias("reading.min_slide_duration", "min-slide-duration")
	v.RegisterAlias("pauses.comma", "pause-comma")
	v.RegisterAlias("pauses.period", "pause-period")
	v.RegisterAlias("pauses.paragraph", "pause-paragraph")
	v.RegisterAlias("display.font", "font")
	v.RegisterAlias("display.font_size", "font-size")
	v.RegisterAlias("app.resume", "resume")
	v.RegisterAlias("app.log_level", "log-level")
}

// Settings converts the loaded configuration into reader settings.
func (c Config) Settings() rsvp.ReaderSettings {
	return rsvp.ReaderSettings{
		WPM:                      c.Reading.WPM,
		WordsPerSlide:            c.Reading.WordsPerSlide,
		Algorithm:                rsvp.Algorithm(c.Reading.Algorithm),
		PauseAfterComma:          c.Pauses.Comma,
		PauseAfterCommaDelay:     c.Pauses.CommaDelay,
		PauseAfterPeriod:         c.Pauses.Period,
		PauseAfterPeriodDelay:    c.Pauses.PeriodDelay,
		PauseAfterParagraph:      c.Pauses.Paragraph,
		PauseAfterParagraphDelay: c.Pauses.ParagraphDelay,
		WordFreqShortDuration:    c.Reading.FreqShort,
		WordFreqLongDuration:     c.Reading.FreqLong,
		Font:                     c.Display.Font,
		FontSize:                 c.Display.FontSize,
		MinSlideDuration:         c.Reading.MinSlideDuration,
	}
}
