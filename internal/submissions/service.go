// Package submissions maintains the local log of form-to-email delivery
// attempts and prunes it on a retention schedule.
package submissions

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/surfaceplanner/surfaced/internal/models"
)

// Service provides access to the submission log
type Service struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewService creates a submissions service
func NewService(db *gorm.DB, logger zerolog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Record persists one delivery attempt
func (s *Service) Record(sub *models.Submission) error {
	if err := s.db.Create(sub).Error; err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// List returns the most recent submissions, newest first
func (s *Service) List(limit int) ([]models.Submission, error) {
	if limit <= 0 {
		limit = 50
	}

	var subs []models.Submission
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

// PruneOlderThan deletes submissions created more than the given number
// of days ago and returns how many rows were removed
func (s *Service) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)

	result := s.db.Where("created_at < ?", cutoff).Delete(&models.Submission{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune submissions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// StartRetentionSweeper schedules the retention prune on the given cron
// expression. Returns the running scheduler so the caller can stop it on
// shutdown.
func (s *Service) StartRetentionSweeper(schedule string, retentionDays int) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		removed, err := s.PruneOlderThan(retentionDays)
		if err != nil {
			s.logger.Error().Err(err).Msg("Retention sweep failed")
			return
		}
		if removed > 0 {
			s.logger.Info().
				Int64("removed", removed).
				Int("retention_days", retentionDays).
				Msg("Pruned old submissions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}

	c.Start()
	s.logger.Info().
		Str("schedule", schedule).
		Int("retention_days", retentionDays).
		Msg("Retention sweeper started")

	return c, nil
}
