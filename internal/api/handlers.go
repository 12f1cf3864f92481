package api

import (
	"errors"
	"net/http"
	"time"

	"retail-bi/internal/analytics"
	"retail-bi/internal/dataset"
	"retail-bi/internal/filter"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	data    *dataset.Dataset
	year    int
	now     func() time.Time
	metrics *Metrics
}

func NewHandler(data *dataset.Dataset, year int, metrics *Metrics) *Handler {
	return &Handler{data: data, year: year, now: time.Now, metrics: metrics}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/options", h.GetOptions)
	api.GET("/pages", h.GetPages)
	api.GET("/:page", h.GetView)
}

// filterParams reads the filter from the query string. Code lists may be
// repeated (?locations=HN&locations=DN) or comma-separated (?locations=HN,DN).
func filterParams(c echo.Context) filter.Params {
	q := c.QueryParams()
	return filter.Params{
		From:        q.Get("from"),
		To:          q.Get("to"),
		Locations:   q["locations"],
		Customers:   q["customers"],
		Products:    q["products"],
		Stores:      q["stores"],
		Granularity: q.Get("granularity"),
	}
}

// GetView computes one page view. Every request starts from a fresh filter.
func (h *Handler) GetView(c echo.Context) error {
	page, err := analytics.ParsePage(c.Param("page"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	st, err := filterParams(c).State()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	view, err := analytics.Render(h.data, page, st, h.year, h.now())
	h.metrics.observe(page, time.Since(start), err)
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownPage) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"dimensions":    h.data.Options(),
		"granularities": filter.Granularities,
	})
}

func (h *Handler) GetPages(c echo.Context) error {
	return c.JSON(http.StatusOK, analytics.Pages)
}
