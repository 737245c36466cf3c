package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// Scheduler turns the app_settings sync schedule into a cron entry that
// fires a full batch sync, followed by inactivity reminders when auto
// emails are enabled.
type Scheduler interface {
	Start(ctx context.Context) error
	Reload(ctx context.Context) error
	Stop()
}

type scheduler struct {
	log          *logger.Logger
	settingsRepo repos.SettingsRepo
	syncService  SyncService
	reminders    ReminderService

	mu   sync.Mutex
	cron *cron.Cron
}

func NewScheduler(log *logger.Logger, settingsRepo repos.SettingsRepo, syncService SyncService, reminders ReminderService) Scheduler {
	serviceLog := log.With("service", "Scheduler")
	return &scheduler{
		log:          serviceLog,
		settingsRepo: settingsRepo,
		syncService:  syncService,
		reminders:    reminders,
	}
}

func (s *scheduler) Start(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload rebuilds the cron entry from the current settings row. Called at
// startup and again whenever the settings are updated.
func (s *scheduler) Reload(ctx context.Context) error {
	settings, err := s.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	spec, err := cronSpec(settings)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		s.cron.Stop()
	}
	s.cron = cron.New()
	if err := s.cron.AddFunc(spec, s.runScheduledSync); err != nil {
		return fmt.Errorf("schedule sync: %w", err)
	}
	s.cron.Start()

	s.log.Info("Sync schedule loaded", "frequency", settings.SyncFrequency, "time", settings.SyncTime, "spec", spec)
	return nil
}

func (s *scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
}

func (s *scheduler) runScheduledSync() {
	ctx := context.Background()

	s.log.Info("Scheduled batch sync starting")
	batch := s.syncService.SyncAll(ctx)

	failed := 0
	for _, r := range batch.Results {
		if !r.Success {
			failed++
		}
	}
	s.log.Info("Scheduled batch sync finished", "students", len(batch.Results), "failed", failed)

	settings, err := s.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		s.log.Warn("Could not reload settings after batch", "error", err)
		return
	}
	if settings.AutoEmailEnabled {
		sent, err := s.reminders.RemindInactive(ctx)
		if err != nil {
			s.log.Warn("Inactivity reminders failed", "error", err)
			return
		}
		s.log.Info("Inactivity reminders sent", "count", sent)
	}
}

// cronSpec maps the settings schedule onto a 6-field cron expression.
// Weekly runs land on Monday at the configured time.
func cronSpec(settings *types.AppSettings) (string, error) {
	hour, minute, err := parseSyncTime(settings.SyncTime)
	if err != nil {
		return "", err
	}

	switch settings.SyncFrequency {
	case "hourly":
		return fmt.Sprintf("0 %d * * * *", minute), nil
	case "daily":
		return fmt.Sprintf("0 %d %d * * *", minute, hour), nil
	case "weekly":
		return fmt.Sprintf("0 %d %d * * 1", minute, hour), nil
	default:
		return "", fmt.Errorf("invalid sync frequency %q", settings.SyncFrequency)
	}
}

func parseSyncTime(raw string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid sync time %q, want HH:MM", raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid sync time %q, want HH:MM", raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid sync time %q, want HH:MM", raw)
	}
	return hour, minute, nil
}
