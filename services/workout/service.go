package workout

import (
	"errors"
	"fmt"

	"github.com/traintrack/traintrack/services/logging"
	"gorm.io/gorm"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Service struct {
	db     *gorm.DB
	logger *logging.Service
}

func NewService(db *gorm.DB, logger *logging.Service) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

func (s *Service) Create(w *Workout) error {
	if err := s.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create workout: %w", err)
	}
	return nil
}

func (s *Service) List(userID uint, filter Filter) ([]Workout, error) {
	query := s.db.Where("user_id = ?", userID)

	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.DateFrom != nil {
		query = query.Where("planned_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("planned_date <= ?", *filter.DateTo)
	}
	if filter.MinDuration != nil {
		query = query.Where("duration >= ?", *filter.MinDuration)
	}
	if filter.MaxDuration != nil {
		query = query.Where("duration <= ?", *filter.MaxDuration)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.Size
	if size < 1 {
		size = 10
	}

	var workouts []Workout
	err := query.
		Order("id").
		Offset((page - 1) * size).
		Limit(size).
		Find(&workouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	return workouts, nil
}

func (s *Service) GetByID(id uint) (*Workout, error) {
	var w Workout
	err := s.db.First(&w, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &w, nil
}

func (s *Service) Update(id uint, data *Workout) (*Workout, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Type = data.Type
	existing.Duration = data.Duration
	existing.Repetitions = data.Repetitions
	existing.PlannedDate = data.PlannedDate
	existing.Notes = data.Notes
	existing.Exercises = data.Exercises

	if err := s.db.Save(existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update workout: %w", err)
	}
	return existing, nil
}

func (s *Service) Delete(id uint) error {
	result := s.db.Delete(&Workout{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete workout: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}
