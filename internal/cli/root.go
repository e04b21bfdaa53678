package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/dataset"
	"seoulmarket/server/internal/pipeline"
)

// App holds the state shared by every subcommand.
type App struct {
	cfg      *config.Config
	logger   *logrus.Logger
	sales    string
	rentals  string
	encoding string
}

func NewRootCmd(cfg *config.Config, logger *logrus.Logger) *cobra.Command {
	app := &App{cfg: cfg, logger: logger}
	cmd := &cobra.Command{
		Use:           "seoulmarket",
		Short:         "Query Seoul real-estate sales and rental exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&app.sales, "sales", cfg.Data.SalesPath, "Path to the sales CSV")
	cmd.PersistentFlags().StringVar(&app.rentals, "rentals", cfg.Data.RentalsPath, "Path to the rentals CSV")
	cmd.PersistentFlags().StringVar(&app.encoding, "encoding", cfg.Data.Encoding, "Character set of the CSV files (utf-8, euc-kr)")

	cmd.AddCommand(
		NewOptionsCmd(app),
		NewOverviewCmd(app),
		NewVarianceCmd(app),
	)
	return cmd
}

func (a *App) loadSales() (*dataset.SalesDataset, error) {
	enc, err := dataset.ParseEncoding(a.encoding)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadSales(a.sales, enc)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{"source": a.sales, "rows": ds.Len(), "dropped": ds.Dropped}).Debug("Loaded sales")
	return ds, nil
}

func (a *App) loadRentals() (*dataset.RentalDataset, error) {
	enc, err := dataset.ParseEncoding(a.encoding)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadRentals(a.rentals, enc)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{"source": a.rentals, "rows": ds.Len()}).Debug("Loaded rentals")
	return ds, nil
}

func (a *App) options() (pipeline.Options, error) {
	return a.cfg.PipelineOptions()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
