package pipeline

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config manages pipeline configuration using Viper
type Config struct {
	v *viper.Viper
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	v := viper.New()

	// Data parameters
	v.SetDefault("data.dir", "./data")

	// Graph construction parameters
	v.SetDefault("graph.join_derived_edges", false)

	// Embedding parameters
	v.SetDefault("embedding.producer", "spectral")
	v.SetDefault("embedding.dimension", 16)

	// Clustering parameters
	v.SetDefault("clustering.k", []int{4})
	v.SetDefault("clustering.seed", int64(42))
	v.SetDefault("clustering.max_iterations", 100)

	// Logging parameters
	v.SetDefault("logging.level", "info")

	return &Config{v: v}
}

// LoadFromFile loads configuration from file
func (c *Config) LoadFromFile(path string) error {
	c.v.SetConfigFile(path)
	return c.v.ReadInConfig()
}

// Getters for data parameters
func (c *Config) DataDir() string { return c.v.GetString("data.dir") }

func (c *Config) JoinDerivedEdges() bool { return c.v.GetBool("graph.join_derived_edges") }

func (c *Config) EmbeddingProducer() string { return c.v.GetString("embedding.producer") }
func (c *Config) EmbeddingDimension() int   { return c.v.GetInt("embedding.dimension") }

func (c *Config) ClusterCounts() []int      { return c.v.GetIntSlice("clustering.k") }
func (c *Config) ClusteringSeed() int64     { return c.v.GetInt64("clustering.seed") }
func (c *Config) ClusteringIterations() int { return c.v.GetInt("clustering.max_iterations") }

func (c *Config) LogLevel() string { return c.v.GetString("logging.level") }

// Set allows dynamic configuration changes
func (c *Config) Set(key string, value interface{}) {
	c.v.Set(key, value)
}

// CreateLogger creates a zerolog logger based on config
func (c *Config) CreateLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel())
	if err != nil {
		level = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("service", "hetgraph").Logger()
}
