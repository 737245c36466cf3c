package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/clients/codeforces"
	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// SyncResult is the per-student outcome reported to callers.
type SyncResult struct {
	Student        string `json:"student"`
	Success        bool   `json:"success"`
	ProblemsSynced int    `json:"problemsSynced,omitempty"`
	ContestsSynced int    `json:"contestsSynced,omitempty"`
	Error          string `json:"error,omitempty"`
}

// BatchResult is the aggregate report of one all-students run. Success means
// the batch ran to completion, not that every student succeeded.
type BatchResult struct {
	Success bool         `json:"success"`
	Results []SyncResult `json:"results"`
}

// SyncService drives the fetch → normalize → aggregate → commit pipeline for
// one student or the whole population.
type SyncService interface {
	SyncStudent(ctx context.Context, studentID uuid.UUID) (*SyncResult, error)
	SyncAll(ctx context.Context) *BatchResult
	Logs(ctx context.Context, studentID *uuid.UUID, limit int) ([]*types.SyncLog, error)
}

type syncService struct {
	db           *gorm.DB
	log          *logger.Logger
	judge        codeforces.Client
	studentRepo  repos.StudentRepo
	settingsRepo repos.SettingsRepo
	syncLogRepo  repos.SyncLogRepo
	writer       SyncWriter
	pacing       time.Duration
	perDayWindow time.Duration
	group        singleflight.Group
	now          func() time.Time
}

func NewSyncService(db *gorm.DB, log *logger.Logger, judge codeforces.Client, studentRepo repos.StudentRepo, settingsRepo repos.SettingsRepo, syncLogRepo repos.SyncLogRepo, writer SyncWriter, pacing time.Duration) SyncService {
	serviceLog := log.With("service", "SyncService")
	if pacing <= 0 {
		pacing = 1 * time.Second
	}
	return &syncService{
		db:           db,
		log:          serviceLog,
		judge:        judge,
		studentRepo:  studentRepo,
		settingsRepo: settingsRepo,
		syncLogRepo:  syncLogRepo,
		writer:       writer,
		pacing:       pacing,
		perDayWindow: 30 * 24 * time.Hour,
		now:          time.Now,
	}
}

// SyncStudent runs the pipeline for one student. Concurrent invocations for
// the same id collapse onto a single run via singleflight; different
// students are unconstrained.
func (ss *syncService) SyncStudent(ctx context.Context, studentID uuid.UUID) (*SyncResult, error) {
	settings, err := ss.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		return nil, err
	}

	student, err := ss.studentRepo.GetByID(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}

	v, err, _ := ss.group.Do(studentID.String(), func() (interface{}, error) {
		result := ss.syncOne(ctx, student, types.SyncTypeManual, activityWindow(settings))
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	result := v.(SyncResult)
	return &result, nil
}

// SyncAll processes every student sequentially with a fixed pacing delay
// between them to stay under the judge's rate limit. A student's failure is
// recorded and the batch moves on; the settings row's last-sync marker is
// written exactly once at the end regardless of individual outcomes.
func (ss *syncService) SyncAll(ctx context.Context) *BatchResult {
	batch := &BatchResult{Success: true, Results: []SyncResult{}}

	settings, err := ss.settingsRepo.GetOrCreate(ctx, nil)
	if err != nil {
		ss.log.Error("Batch sync aborted, failed to load settings", "error", err)
		batch.Success = false
		return batch
	}

	students, err := ss.studentRepo.List(ctx, nil)
	if err != nil {
		ss.log.Error("Batch sync aborted, failed to enumerate students", "error", err)
		batch.Success = false
		return batch
	}

	window := activityWindow(settings)
	for i, student := range students {
		if i > 0 {
			time.Sleep(ss.pacing)
		}
		result := ss.syncOne(ctx, student, types.SyncTypeScheduled, window)
		batch.Results = append(batch.Results, result)
	}

	if err := ss.settingsRepo.SetLastSync(ctx, nil, settings.ID, ss.now().UTC()); err != nil {
		ss.log.Error("Failed to update last sync marker", "error", err)
	}

	ss.log.Info("Batch sync finished", "students", len(batch.Results))
	return batch
}

// syncOne is the strict per-student pipeline: fetch, normalize, aggregate,
// commit, in that order. Every attempt appends exactly one sync log entry,
// success or failure.
func (ss *syncService) syncOne(ctx context.Context, student *types.Student, kind types.SyncType, window time.Duration) SyncResult {
	tracer := otel.Tracer("codetrack/sync")
	ctx, span := tracer.Start(ctx, "sync.student")
	span.SetAttributes(
		attribute.String("student.id", student.ID.String()),
		attribute.String("student.handle", student.CodeforcesHandle),
		attribute.String("sync.kind", string(kind)),
	)
	defer span.End()

	log := ss.log.With("student_id", student.ID.String(), "handle", student.CodeforcesHandle)
	log.Info("Syncing student")

	submissions, changes, err := ss.judge.FetchHistory(ctx, student.CodeforcesHandle)
	if err != nil {
		log.Warn("Submission fetch failed", "error", err)
		span.SetStatus(codes.Error, err.Error())
		ss.writer.LogOutcome(ctx, &types.SyncLog{
			StudentID:    student.ID,
			SyncType:     kind,
			Status:       types.SyncStatusFailed,
			ErrorMessage: err.Error(),
		})
		return SyncResult{Student: student.Name, Success: false, Error: err.Error()}
	}

	problems := NormalizeProblems(student.ID, submissions)
	contests := NormalizeContests(student.ID, changes)

	now := ss.now().UTC()
	snapshot := SyncSnapshot{
		CurrentRating: CurrentRating(contests),
		MaxRating:     MaxRating(contests),
		IsActive:      IsActive(problems, now, window),
		Stats:         Summarize(problems, now, ss.perDayWindow),
		SyncedAt:      now,
	}

	if err := ss.writer.Commit(ctx, student.ID, problems, contests, snapshot); err != nil {
		log.Error("Commit failed", "error", err)
		span.SetStatus(codes.Error, err.Error())
		ss.writer.LogOutcome(ctx, &types.SyncLog{
			StudentID:    student.ID,
			SyncType:     kind,
			Status:       types.SyncStatusFailed,
			ErrorMessage: err.Error(),
		})
		return SyncResult{Student: student.Name, Success: false, Error: err.Error()}
	}

	ss.writer.LogOutcome(ctx, &types.SyncLog{
		StudentID:      student.ID,
		SyncType:       kind,
		Status:         types.SyncStatusSuccess,
		ProblemsSynced: len(problems),
		ContestsSynced: len(contests),
	})

	log.Info("Student synced", "problems", len(problems), "contests", len(contests))
	return SyncResult{
		Student:        student.Name,
		Success:        true,
		ProblemsSynced: len(problems),
		ContestsSynced: len(contests),
	}
}

// Logs returns recent audit entries, newest first, optionally filtered to
// one student.
func (ss *syncService) Logs(ctx context.Context, studentID *uuid.UUID, limit int) ([]*types.SyncLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return ss.syncLogRepo.List(ctx, nil, studentID, limit)
}

func activityWindow(settings *types.AppSettings) time.Duration {
	days := settings.InactivityThresholdDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}
