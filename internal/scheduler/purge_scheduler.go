package scheduler

import (
	"time"

	"github.com/jmoroz/cookbook-backend/config"
	"github.com/jmoroz/cookbook-backend/internal/app/repository"
	"github.com/jmoroz/cookbook-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// PurgeScheduler hard-deletes soft-deleted recipes once their retention
// window has passed. Runs on the configured cron schedule.
type PurgeScheduler struct {
	cron       *cron.Cron
	recipeRepo repository.RecipeRepository
	cfg        config.PurgeConfig
}

func NewPurgeScheduler(recipeRepo repository.RecipeRepository, cfg config.PurgeConfig) *PurgeScheduler {
	return &PurgeScheduler{
		cron:       cron.New(),
		recipeRepo: recipeRepo,
		cfg:        cfg,
	}
}

func (s *PurgeScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.Schedule, s.run)
	if err != nil {
		logger.Error("Failed to schedule recipe purge", err, map[string]interface{}{
			"schedule": s.cfg.Schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Recipe purge scheduled", map[string]interface{}{
		"schedule":  s.cfg.Schedule,
		"retention": s.cfg.Retention.String(),
	})
	return nil
}

func (s *PurgeScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Recipe purge scheduler stopped", nil)
}

func (s *PurgeScheduler) run() {
	cutoff := time.Now().Add(-s.cfg.Retention)

	purged, err := s.recipeRepo.PurgeDeletedBefore(cutoff)
	if err != nil {
		logger.Error("Recipe purge run failed", err, map[string]interface{}{
			"cutoff": cutoff.Format(time.RFC3339),
		})
		return
	}

	logger.Info("Recipe purge run completed", map[string]interface{}{
		"cutoff": cutoff.Format(time.RFC3339),
		"purged": purged,
	})
}
