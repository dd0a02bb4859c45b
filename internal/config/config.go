package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sources    []SourceConfig `yaml:"sources" mapstructure:"sources"`
	Ingest     IngestConfig   `yaml:"ingest" mapstructure:"ingest"`
	Facilities []string       `yaml:"facilities" mapstructure:"facilities"`
	Output     OutputConfig   `yaml:"output" mapstructure:"output"`
	Render     RenderConfig   `yaml:"render" mapstructure:"render"`
	Server     ServerConfig   `yaml:"server" mapstructure:"server"`
	Log        LogConfig      `yaml:"log" mapstructure:"log"`
}

// SourceConfig names one city export directory.
type SourceConfig struct {
	Label string `yaml:"label" mapstructure:"label"`
	Dir   string `yaml:"dir" mapstructure:"dir"`
}

// IngestConfig configures spreadsheet loading and field normalization.
type IngestConfig struct {
	Pattern         string   `yaml:"pattern" mapstructure:"pattern"`
	Columns         string   `yaml:"columns" mapstructure:"columns"`
	Workers         int      `yaml:"workers" mapstructure:"workers"`
	DurationSeconds bool     `yaml:"duration_seconds" mapstructure:"duration_seconds"`
	StrictDates     bool     `yaml:"strict_dates" mapstructure:"strict_dates"`
	TimeLayouts     []string `yaml:"time_layouts" mapstructure:"time_layouts"`
}

// OutputConfig configures the Output Table CSV.
type OutputConfig struct {
	CSV string `yaml:"csv" mapstructure:"csv"`
}

// RenderConfig configures map rendering.
type RenderConfig struct {
	Input           string  `yaml:"input" mapstructure:"input"`
	MarkerMap       string  `yaml:"marker_map" mapstructure:"marker_map"`
	HeatMap         string  `yaml:"heat_map" mapstructure:"heat_map"`
	CenterLat       float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon       float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom            int     `yaml:"zoom" mapstructure:"zoom"`
	SampleFrac      float64 `yaml:"sample_frac" mapstructure:"sample_frac"`
	Seed            uint64  `yaml:"seed" mapstructure:"seed"`
	OutlierQuantile float64 `yaml:"outlier_quantile" mapstructure:"outlier_quantile"`
	RadiusDivisor   float64 `yaml:"radius_divisor" mapstructure:"radius_divisor"`
	HeatRadius      int     `yaml:"heat_radius" mapstructure:"heat_radius"`
}

// ServerConfig configures the map preview server.
type ServerConfig struct {
	Port   int    `yaml:"port" mapstructure:"port"`
	MapDir string `yaml:"map_dir" mapstructure:"map_dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// DefaultTimeLayouts are tried in order when parsing the Time column.
var DefaultTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"1/2/2006",
	"01-02-06",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FLEET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sources", []map[string]any{
		{"label": "Regina", "dir": "/Data/Regina_Data"},
		{"label": "Saskatoon", "dir": "/Saskatoon_Data"},
	})
	v.SetDefault("ingest.pattern", "*.xlsx")
	v.SetDefault("ingest.columns", "A:F,H,I,K")
	v.SetDefault("ingest.workers", 0)
	v.SetDefault("ingest.duration_seconds", false)
	v.SetDefault("ingest.strict_dates", false)
	v.SetDefault("ingest.time_layouts", DefaultTimeLayouts)
	v.SetDefault("facilities", []string{
		"/Data/Other_Input_Data/box_address.xlsx",
		"/Data/Other_Input_Data/sask_branches.xlsx",
	})
	v.SetDefault("output.csv", "/Facility_Location/Data/Sask.csv")
	v.SetDefault("render.input", "Data/Sask.csv")
	v.SetDefault("render.marker_map", "DrivingMapSask.html")
	v.SetDefault("render.heat_map", "SaskDrivingHeatMap.html")
	v.SetDefault("render.center_lat", 52.0)
	v.SetDefault("render.center_lon", -113.0)
	v.SetDefault("render.zoom", 6)
	v.SetDefault("render.sample_frac", 0.1)
	v.SetDefault("render.seed", 1)
	v.SetDefault("render.outlier_quantile", 0.8)
	v.SetDefault("render.radius_divisor", 1000.0)
	v.SetDefault("render.heat_radius", 10)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.map_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "app1.log")

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

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return eris.New("config: at least one source is required")
	}
	for i, s := range c.Sources {
		if s.Label == "" || s.Dir == "" {
			return eris.Errorf("config: source %d needs both label and dir", i)
		}
	}
	if c.Render.OutlierQuantile < 0 || c.Render.OutlierQuantile > 1 {
		return eris.Errorf("config: render.outlier_quantile %v outside [0,1]", c.Render.OutlierQuantile)
	}
	if c.Render.SampleFrac <= 0 {
		return eris.Errorf("config: render.sample_frac must be positive, got %v", c.Render.SampleFrac)
	}
	if c.Render.RadiusDivisor == 0 {
		return eris.New("config: render.radius_divisor must be non-zero")
	}
	return nil
}

// InitLogger initializes the global zap logger. When cfg.File is set it
// receives every entry alongside stderr; fresh truncates it first, otherwise
// entries are appended.
func InitLogger(cfg LogConfig, fresh bool) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		// zap opens file sinks in append mode.
		if fresh {
			f, err := os.Create(cfg.File)
			if err != nil {
				return eris.Wrap(err, "config: truncate log file")
			}
			_ = f.Close()
		}
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.File)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
