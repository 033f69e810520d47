package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/traintrack/traintrack/middleware/auth"
	"github.com/traintrack/traintrack/services/workout"
)

type WorkoutHandler struct {
	workouts *workout.Service
}

func NewWorkoutHandler(workouts *workout.Service) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

func (h *WorkoutHandler) Create(c echo.Context) error {
	var w workout.Workout
	if err := c.Bind(&w); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	w.ID = 0
	w.UserID = auth.CurrentUserID(c)

	if err := h.workouts.Create(&w); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create workout")
	}

	return c.JSON(http.StatusCreated, w)
}

func (h *WorkoutHandler) List(c echo.Context) error {
	filter := workout.Filter{
		Page: intQueryParam(c, "page", 1),
		Size: intQueryParam(c, "size", 10),
	}

	if v := c.QueryParam("type"); v != "" {
		t := workout.WorkoutType(v)
		filter.Type = &t
	}
	if v := c.QueryParam("date_from"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &d
		}
	}
	if v := c.QueryParam("date_to"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &d
		}
	}
	if v := c.QueryParam("min_duration"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MinDuration = &n
		}
	}
	if v := c.QueryParam("max_duration"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.MaxDuration = &n
		}
	}

	workouts, err := h.workouts.List(auth.CurrentUserID(c), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list workouts")
	}

	return c.JSON(http.StatusOK, workouts)
}

func (h *WorkoutHandler) Get(c echo.Context) error {
	w, err := h.loadOwned(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, w)
}

func (h *WorkoutHandler) Update(c echo.Context) error {
	existing, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	var data workout.Workout
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.workouts.Update(existing.ID, &data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update workout")
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *WorkoutHandler) Delete(c echo.Context) error {
	existing, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	if err := h.workouts.Delete(existing.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete workout")
	}

	return c.NoContent(http.StatusNoContent)
}

// loadOwned resolves the workout from the path and enforces ownership.
func (h *WorkoutHandler) loadOwned(c echo.Context) (*workout.Workout, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Workout not found")
	}

	w, err := h.workouts.GetByID(uint(id))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Workout not found")
	}
	if w.UserID != auth.CurrentUserID(c) {
		return nil, echo.NewHTTPError(http.StatusForbidden, "Forbidden")
	}

	return w, nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
