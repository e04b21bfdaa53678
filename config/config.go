package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"seoulmarket/server/internal/dataset"
	"seoulmarket/server/internal/pipeline"
)

type Config struct {
	// Data sources
	Data struct {
		// Sale-transaction export
		SalesPath string `env:"SALES_PATH" envDefault:"data/data.csv"`

		// Rental-contract export
		RentalsPath string `env:"RENTALS_PATH" envDefault:"data/rent.csv"`

		// Character set of both files (utf-8, euc-kr, cp949)
		Encoding string `env:"DATA_ENCODING" envDefault:"utf-8"`

		// How often the files are checked for changes; 0 disables
		RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"1m"`
	}

	Server struct {
		Port        string   `env:"HTTP_PORT" envDefault:"5250"`
		CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	}

	// Ingestion log database
	Database struct {
		Path string `env:"DB_PATH" envDefault:"database/ingest.db"`

		// Pending load events buffered ahead of the database
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"64"`
	}

	Logging struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	Pipeline struct {
		// Rows in the top and bottom apartment tables
		TopN int `env:"TOP_N" envDefault:"10"`

		// Restrict rental views to the selected year as well as the month
		RentalFilterByYear bool `env:"RENTAL_FILTER_BY_YEAR" envDefault:"false"`

		// strict or zero-baseline
		VariancePolicy string `env:"VARIANCE_POLICY" envDefault:"strict"`

		// Heatmap bin widths
		DensityYearBin   int   `env:"DENSITY_YEAR_BIN" envDefault:"5"`
		DensityAmountBin int64 `env:"DENSITY_AMOUNT_BIN" envDefault:"10000"`
	}
}

// LoadConfig reads an optional .env file and then the environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Sources returns the dataset sources described by the configuration.
func (c *Config) Sources() (sales, rentals dataset.Source, err error) {
	enc, err := dataset.ParseEncoding(c.Data.Encoding)
	if err != nil {
		return sales, rentals, err
	}
	sales = dataset.Source{Path: c.Data.SalesPath, Encoding: enc}
	rentals = dataset.Source{Path: c.Data.RentalsPath, Encoding: enc}
	return sales, rentals, nil
}

// PipelineOptions converts the pipeline settings into view builder options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	policy, err := pipeline.ParseVariancePolicy(c.Pipeline.VariancePolicy)
	if err != nil {
		return pipeline.Options{}, err
	}
	if c.Pipeline.TopN <= 0 {
		return pipeline.Options{}, fmt.Errorf("TOP_N must be positive, got %d", c.Pipeline.TopN)
	}
	return pipeline.Options{
		TopN:               c.Pipeline.TopN,
		RentalFilterByYear: c.Pipeline.RentalFilterByYear,
		VariancePolicy:     policy,
		DensityYearBin:     c.Pipeline.DensityYearBin,
		DensityAmountBin:   c.Pipeline.DensityAmountBin,
	}, nil
}

// NewLogger builds the JSON logger used across the service.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		logger.WithField("level", c.Logging.Level).Warn("Unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
