package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/traintrack/traintrack/services/stats"
	"github.com/traintrack/traintrack/services/workout"
)

type StatsHandler struct {
	stats *stats.Service
}

func NewStatsHandler(stats *stats.Service) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Get(c echo.Context) error {
	amount, err := h.stats.TotalCount()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to collect stats")
	}

	duration, err := h.stats.TotalDuration()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to collect stats")
	}

	result := echo.Map{
		"global_trains_amount":   amount,
		"global_trains_duration": duration,
	}

	if v := c.QueryParam("type"); v != "" {
		byType, err := h.stats.CountByType(workout.WorkoutType(v))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to collect stats")
		}
		result["global_trains_by_type"] = byType
	}

	if v := c.QueryParam("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		}
		byDate, err := h.stats.CountByDate(date)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to collect stats")
		}
		result["global_trains_by_date"] = byDate
	}

	return c.JSON(http.StatusOK, result)
}
