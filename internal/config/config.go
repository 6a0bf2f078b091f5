package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/hexagg/internal/aggregate"
	"github.com/sells-group/hexagg/internal/cell"
)

// Config holds the full application configuration.
type Config struct {
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Sweep  SweepConfig  `yaml:"sweep" mapstructure:"sweep"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EngineConfig holds the runtime settings of the indexing engine.
type EngineConfig struct {
	Resolution         int  `yaml:"resolution" mapstructure:"resolution"`
	IncludeCoordinates bool `yaml:"include_coordinates" mapstructure:"include_coordinates"`
	// Aggregations are "column=function" assignments. A list is used instead
	// of a map because viper lowercases map keys and column names are
	// case-sensitive.
	Aggregations []string `yaml:"aggregations" mapstructure:"aggregations"`
}

// InputConfig configures the tabular reader.
type InputConfig struct {
	Delimiter  string `yaml:"delimiter" mapstructure:"delimiter"`
	Sheet      string `yaml:"sheet" mapstructure:"sheet"`
	LazyQuotes bool   `yaml:"lazy_quotes" mapstructure:"lazy_quotes"`
}

// OutputConfig configures the tabular writer.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// SweepConfig configures the resolution sweep.
type SweepConfig struct {
	Concurrency  int `yaml:"concurrency" mapstructure:"concurrency"`
	MinOccupancy int `yaml:"min_occupancy" mapstructure:"min_occupancy"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HEXAGG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("engine.resolution", cell.DefaultResolution)
	v.SetDefault("engine.include_coordinates", true)
	v.SetDefault("engine.aggregations", []string{})
	v.SetDefault("input.delimiter", ",")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.lazy_quotes", false)
	v.SetDefault("output.format", "csv")
	v.SetDefault("sweep.concurrency", 4)
	v.SetDefault("sweep.min_occupancy", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges that viper cannot enforce.
func (c *Config) Validate() error {
	if !cell.ValidResolution(c.Engine.Resolution) {
		return eris.Errorf("config: engine.resolution %d out of range [%d, %d]",
			c.Engine.Resolution, cell.MinResolution, cell.MaxResolution)
	}
	if _, err := aggregate.ParseAssignments(c.Engine.Aggregations); err != nil {
		return eris.Wrap(err, "config: engine.aggregations")
	}
	if len([]rune(c.Input.Delimiter)) != 1 {
		return eris.Errorf("config: input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	switch c.Output.Format {
	case "csv", "xlsx":
	default:
		return eris.Errorf("config: unsupported output.format %q", c.Output.Format)
	}
	if c.Sweep.Concurrency < 1 {
		return eris.New("config: sweep.concurrency must be at least 1")
	}
	if c.Sweep.MinOccupancy < 1 {
		return eris.New("config: sweep.min_occupancy must be at least 1")
	}
	return nil
}

// DelimiterRune returns the configured input delimiter as a rune.
func (c InputConfig) DelimiterRune() rune {
	r := []rune(c.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

// InitLogger replaces the global zap logger. "console" selects the
// human-readable development encoder; anything else logs JSON. Logs go to
// stderr so exports written to stdout stay clean.
func InitLogger(cfg LogConfig) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)
	return nil
}
