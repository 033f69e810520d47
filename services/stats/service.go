package stats

import (
	"fmt"
	"time"

	"github.com/traintrack/traintrack/services/logging"
	"github.com/traintrack/traintrack/services/workout"
	"gorm.io/gorm"
)

// Service aggregates global workout statistics across all users. It is only
// reachable through admin-gated routes.
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

func (s *Service) TotalCount() (int64, error) {
	var count int64
	if err := s.db.Model(&workout.Workout{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count workouts: %w", err)
	}
	return count, nil
}

func (s *Service) TotalDuration() (int64, error) {
	var total int64
	err := s.db.Model(&workout.Workout{}).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum workout duration: %w", err)
	}
	return total, nil
}

func (s *Service) CountByType(t workout.WorkoutType) (int64, error) {
	var count int64
	err := s.db.Model(&workout.Workout{}).
		Where("type = ?", t).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts by type: %w", err)
	}
	return count, nil
}

func (s *Service) CountByDate(date time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&workout.Workout{}).
		Where("planned_date = ?", date).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count workouts by date: %w", err)
	}
	return count, nil
}
