package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/database"
	"seoulmarket/server/internal/dataset"
	"seoulmarket/server/internal/export"
	"seoulmarket/server/internal/geometry"
	"seoulmarket/server/internal/models"
	"seoulmarket/server/internal/pipeline"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Datasets is the read side of dataset.Store.
type Datasets interface {
	Sales(ctx context.Context) (*dataset.SalesDataset, error)
	Rentals(ctx context.Context) (*dataset.RentalDataset, error)
}

// IngestionLog lists recorded dataset loads.
type IngestionLog interface {
	Recent(limit int) ([]database.Ingestion, error)
	LastSuccess(kind string) (*database.Ingestion, error)
}

type Handler struct {
	data   Datasets
	log    IngestionLog
	opts   pipeline.Options
	logger *logrus.Logger
}

type HouseTypeOption struct {
	Value string `json:"value"`
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

type OptionsResponse struct {
	Districts       []string          `json:"districts"`
	Catalog         []string          `json:"catalog"`
	Years           []int             `json:"years"`
	Months          map[int][]int     `json:"months"`
	HouseTypes      []HouseTypeOption `json:"house_types"`
	RentalDistricts []string          `json:"rental_districts"`
}

// NewHandler wires the handlers. log may be nil when no ingestion database
// is configured.
func NewHandler(data Datasets, log IngestionLog, opts pipeline.Options, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Handler{
		data:   data,
		log:    log,
		opts:   opts,
		logger: logger,
	}
}

// Health reports the last successful load of each dataset. A missing entry
// means the dataset has not loaded since the log was created.
func (h *Handler) Health(c *gin.Context) {
	loaded := gin.H{}
	if h.log != nil {
		for _, kind := range []string{dataset.KindSales, dataset.KindRentals} {
			last, err := h.log.LastSuccess(kind)
			if err != nil {
				h.logger.WithError(err).WithField("kind", kind).Error("Failed to get last ingestion")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get last ingestion"})
				return
			}
			if last != nil {
				loaded[kind] = last
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "loaded": loaded})
}

func (h *Handler) GetOptions(c *gin.Context) {
	sales, err := h.data.Sales(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load sales data")
		return
	}
	rentals, err := h.data.Rentals(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load rental data")
		return
	}

	years := sales.Years()
	months := make(map[int][]int, len(years))
	for _, y := range years {
		months[y] = sales.Months(y)
	}

	houseTypes := make([]HouseTypeOption, 0, len(models.HouseTypes))
	for _, ht := range models.HouseTypes {
		houseTypes = append(houseTypes, HouseTypeOption{Value: string(ht), Slug: ht.Slug(), Label: ht.Label()})
	}

	c.JSON(http.StatusOK, OptionsResponse{
		Districts:       sales.Districts(),
		Catalog:         config.GetDistrictNames(),
		Years:           years,
		Months:          months,
		HouseTypes:      houseTypes,
		RentalDistricts: rentals.Districts(),
	})
}

func (h *Handler) GetOverview(c *gin.Context) {
	sel, sales, ok := h.salesSelection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildOverview(sales.Records, sel, h.opts))
}

func (h *Handler) GetRatio(c *gin.Context) {
	sel, sales, ok := h.salesSelection(c)
	if !ok {
		return
	}
	rentals, err := h.data.Rentals(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load rental data")
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildRatio(sales.Records, rentals.Records, sel, h.opts))
}

func (h *Handler) GetTrend(c *gin.Context) {
	sel, sales, ok := h.salesSelection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildTrend(sales.Records, sel))
}

func (h *Handler) GetCorrelation(c *gin.Context) {
	sel, sales, ok := h.salesSelection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildCorrelation(sales.Records, sel, h.opts))
}

func (h *Handler) GetSeoul(c *gin.Context) {
	year, month, err := parseYearMonth(c, true)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return
	}
	houseType, err := parseHouseType(c)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return
	}

	sales, err := h.data.Sales(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load sales data")
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildSeoul(sales.Records, year, month, houseType))
}

func (h *Handler) GetRentVariance(c *gin.Context) {
	sel, err := parseSelection(c)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return
	}
	rentals, err := h.data.Rentals(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load rental data")
		return
	}
	c.JSON(http.StatusOK, pipeline.BuildVariance(rentals.Records, sel, h.opts))
}

func (h *Handler) ExportOverview(c *gin.Context) {
	sel, sales, ok := h.salesSelection(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOverview(&buf, pipeline.BuildOverview(sales.Records, sel, h.opts)); err != nil {
		h.fail(c, err, "Failed to build workbook")
		return
	}

	filename := fmt.Sprintf("overview-%d-%02d.xlsx", sel.Year, sel.Month)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetDistrictsGeoJSON returns one point per district in the sales data.
// With year and month the points carry that month's statistics, otherwise
// statistics over the whole dataset.
func (h *Handler) GetDistrictsGeoJSON(c *gin.Context) {
	year, month, err := parseYearMonth(c, false)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return
	}
	houseType, err := parseHouseType(c)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return
	}

	sales, err := h.data.Sales(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load sales data")
		return
	}

	subset := sales.Records
	switch {
	case year > 0:
		subset = pipeline.FilterSalesMonth(subset, year, month, houseType)
	case houseType != models.AnyHouseType:
		subset = pipeline.FilterByHouseType(subset, houseType)
	}
	stats := geometry.StatsFromPrices(pipeline.DistrictPrices(subset))

	fc := geometry.DistrictCollection(config.SeoulDistricts, sales.Districts(), stats)
	if len(fc.Features) > 0 {
		fc.BBox = geojson.NewBBox(geometry.Bounds(fc))
	}
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) GetIngestions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if h.log == nil {
		c.JSON(http.StatusOK, []database.Ingestion{})
		return
	}

	rows, err := h.log.Recent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get ingestions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ingestions"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// salesSelection parses the selection and loads the sales dataset, writing
// the error response itself when either fails.
func (h *Handler) salesSelection(c *gin.Context) (models.Selection, *dataset.SalesDataset, bool) {
	sel, err := parseSelection(c)
	if err != nil {
		h.fail(c, err, "Invalid selection")
		return sel, nil, false
	}
	sales, err := h.data.Sales(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load sales data")
		return sel, nil, false
	}
	return sel, sales, true
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	status := statusFor(err)
	entry := h.logger.WithError(err).WithField("path", c.Request.URL.Path)
	if status >= http.StatusInternalServerError {
		entry.Error(msg)
	} else {
		entry.Warn(msg)
	}
	c.JSON(status, gin.H{"error": msg, "detail": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, dataset.ErrDataAccess),
		errors.Is(err, dataset.ErrSchema),
		errors.Is(err, dataset.ErrDateParse),
		errors.Is(err, dataset.ErrValueParse):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func parseSelection(c *gin.Context) (models.Selection, error) {
	year, month, err := parseYearMonth(c, true)
	if err != nil {
		return models.Selection{}, err
	}
	houseType, err := parseHouseType(c)
	if err != nil {
		return models.Selection{}, err
	}

	sel := models.Selection{
		District:  c.Query("district"),
		Year:      year,
		Month:     month,
		HouseType: houseType,
	}
	if d := config.GetDistrictByName(sel.District); d != nil {
		sel.District = d.Name
	}
	return sel, sel.Validate()
}

// parseYearMonth reads year and month. When required is false both may be
// omitted, but not just one of them.
func parseYearMonth(c *gin.Context, required bool) (int, int, error) {
	yearStr, monthStr := c.Query("year"), c.Query("month")
	if !required && yearStr == "" && monthStr == "" {
		return 0, 0, nil
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: year %q is not a number", models.ErrInvalidSelection, yearStr)
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: month %q is not a number", models.ErrInvalidSelection, monthStr)
	}
	if year <= 0 {
		return 0, 0, fmt.Errorf("%w: year must be positive, got %d", models.ErrInvalidSelection, year)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month must be between 1 and 12, got %d", models.ErrInvalidSelection, month)
	}
	return year, month, nil
}

func parseHouseType(c *gin.Context) (models.HouseType, error) {
	raw := c.Query("house_type")
	ht, ok := models.ParseHouseType(raw)
	if !ok {
		return models.AnyHouseType, fmt.Errorf("%w: unknown house type %q", models.ErrInvalidSelection, raw)
	}
	return ht, nil
}
