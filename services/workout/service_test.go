package workout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traintrack/traintrack/testutils"
)

func seedWorkouts(t *testing.T, service *Service) {
	date := func(day int) *time.Time {
		d := time.Date(2026, time.August, day, 0, 0, 0, 0, time.UTC)
		return &d
	}

	fixtures := []Workout{
		{UserID: 1, Type: TypeGym, Duration: 30, Repetitions: 10, PlannedDate: date(1)},
		{UserID: 1, Type: TypeGym, Duration: 60, Repetitions: 12, PlannedDate: date(5)},
		{UserID: 1, Type: TypeVolleyball, Duration: 90, Repetitions: 20, PlannedDate: date(10)},
		{UserID: 2, Type: TypeGym, Duration: 45, Repetitions: 15, PlannedDate: date(5)},
	}
	for i := range fixtures {
		require.NoError(t, service.Create(&fixtures[i]))
	}
}

func TestService_CreateAndGet(t *testing.T) {
	db := testutils.SetupTestDB(t, &Workout{})
	service := NewService(db, nil)

	w := Workout{
		UserID:      1,
		Type:        TypeGym,
		Duration:    30,
		Repetitions: 10,
		Exercises:   []string{"squat", "bench press"},
	}
	require.NoError(t, service.Create(&w))
	require.NotZero(t, w.ID)

	found, err := service.GetByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, TypeGym, found.Type)
	assert.Equal(t, []string{"squat", "bench press"}, found.Exercises)

	_, err = service.GetByID(9999)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestService_List(t *testing.T) {
	db := testutils.SetupTestDB(t, &Workout{})
	service := NewService(db, nil)
	seedWorkouts(t, service)

	t.Run("scoped to the owner", func(t *testing.T) {
		workouts, err := service.List(1, Filter{})
		require.NoError(t, err)
		assert.Len(t, workouts, 3)
	})

	t.Run("filter by type", func(t *testing.T) {
		gym := TypeGym
		workouts, err := service.List(1, Filter{Type: &gym})
		require.NoError(t, err)
		assert.Len(t, workouts, 2)
	})

	t.Run("filter by duration range", func(t *testing.T) {
		minD, maxD := 40, 100
		workouts, err := service.List(1, Filter{MinDuration: &minD, MaxDuration: &maxD})
		require.NoError(t, err)
		assert.Len(t, workouts, 2)
	})

	t.Run("filter by date window", func(t *testing.T) {
		from := time.Date(2026, time.August, 4, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.August, 6, 0, 0, 0, 0, time.UTC)
		workouts, err := service.List(1, Filter{DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		assert.Len(t, workouts, 1)
	})

	t.Run("pagination", func(t *testing.T) {
		workouts, err := service.List(1, Filter{Page: 1, Size: 2})
		require.NoError(t, err)
		assert.Len(t, workouts, 2)

		workouts, err = service.List(1, Filter{Page: 2, Size: 2})
		require.NoError(t, err)
		assert.Len(t, workouts, 1)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	db := testutils.SetupTestDB(t, &Workout{})
	service := NewService(db, nil)

	w := Workout{UserID: 1, Type: TypeGym, Duration: 30, Repetitions: 10}
	require.NoError(t, service.Create(&w))

	updated, err := service.Update(w.ID, &Workout{
		Type:        TypeVolleyball,
		Duration:    75,
		Repetitions: 25,
		Notes:       "beach court",
	})
	require.NoError(t, err)
	assert.Equal(t, TypeVolleyball, updated.Type)
	assert.Equal(t, 75, updated.Duration)
	assert.Equal(t, "beach court", updated.Notes)

	_, err = service.Update(9999, &Workout{})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	require.NoError(t, service.Delete(w.ID))
	_, err = service.GetByID(w.ID)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	assert.ErrorIs(t, service.Delete(w.ID), ErrWorkoutNotFound)
}
