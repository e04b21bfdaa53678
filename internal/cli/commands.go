package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/export"
	"seoulmarket/server/internal/models"
	"seoulmarket/server/internal/pipeline"
)

type selectionFlags struct {
	district  string
	year      int
	month     int
	houseType string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.district, "district", "", "District (gu) name")
	cmd.Flags().IntVar(&f.year, "year", 0, "Deal year")
	cmd.Flags().IntVar(&f.month, "month", 0, "Deal month (1-12)")
	cmd.Flags().StringVar(&f.houseType, "house-type", "", "House type (apartment, studio, villa1, villa2)")

	_ = cmd.MarkFlagRequired("district")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")
}

func (f *selectionFlags) selection() (models.Selection, error) {
	ht, ok := models.ParseHouseType(f.houseType)
	if !ok {
		return models.Selection{}, fmt.Errorf("%w: unknown house type %q", models.ErrInvalidSelection, f.houseType)
	}
	sel := models.Selection{District: f.district, Year: f.year, Month: f.month, HouseType: ht}
	if d := config.GetDistrictByName(sel.District); d != nil {
		sel.District = d.Name
	}
	return sel, sel.Validate()
}

func NewOptionsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the districts, years and months present in the sales data",
		RunE: func(cmd *cobra.Command, args []string) error {
			sales, err := app.loadSales()
			if err != nil {
				return err
			}
			years := sales.Years()
			months := make(map[int][]int, len(years))
			for _, y := range years {
				months[y] = sales.Months(y)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"districts": sales.Districts(),
				"years":     years,
				"months":    months,
			})
		},
	}
}

type overviewCmd struct {
	app  *App
	sel  selectionFlags
	xlsx string
}

func NewOverviewCmd(app *App) *cobra.Command {
	oc := &overviewCmd{app: app}
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Print the KPI summary and apartment rankings of a selection",
		RunE:  oc.run,
	}
	oc.sel.register(cmd)
	cmd.Flags().StringVar(&oc.xlsx, "xlsx", "", "Also write the overview to this XLSX file")
	return cmd
}

func (oc *overviewCmd) run(cmd *cobra.Command, args []string) error {
	sel, err := oc.sel.selection()
	if err != nil {
		return err
	}
	opts, err := oc.app.options()
	if err != nil {
		return err
	}
	sales, err := oc.app.loadSales()
	if err != nil {
		return err
	}

	view := pipeline.BuildOverview(sales.Records, sel, opts)
	if oc.xlsx != "" {
		f, err := os.Create(oc.xlsx)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", oc.xlsx, err)
		}
		if err := export.WriteOverview(f, view); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return writeJSON(cmd.OutOrStdout(), view)
}

type varianceCmd struct {
	app    *App
	sel    selectionFlags
	policy string
}

func NewVarianceCmd(app *App) *cobra.Command {
	vc := &varianceCmd{app: app}
	cmd := &cobra.Command{
		Use:   "variance",
		Short: "Print the rent and deposit changes of a district's contracts",
		RunE:  vc.run,
	}
	vc.sel.register(cmd)
	cmd.Flags().StringVar(&vc.policy, "policy", "", "Variance policy (strict, zero-baseline); defaults to configuration")
	return cmd
}

func (vc *varianceCmd) run(cmd *cobra.Command, args []string) error {
	sel, err := vc.sel.selection()
	if err != nil {
		return err
	}
	opts, err := vc.app.options()
	if err != nil {
		return err
	}
	if vc.policy != "" {
		if opts.VariancePolicy, err = pipeline.ParseVariancePolicy(vc.policy); err != nil {
			return err
		}
	}
	rentals, err := vc.app.loadRentals()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), pipeline.BuildVariance(rentals.Records, sel, opts))
}
