package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/logger"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// SyncSnapshot carries the aggregator's outputs into a commit.
type SyncSnapshot struct {
	CurrentRating int
	MaxRating     int
	IsActive      bool
	Stats         types.Statistics
	SyncedAt      time.Time
}

// SyncWriter reconciles one student's derived rows against a freshly
// computed set and keeps the append-only sync audit trail.
type SyncWriter interface {
	Commit(ctx context.Context, studentID uuid.UUID, problems []*types.Problem, contests []*types.Contest, snapshot SyncSnapshot) error
	LogOutcome(ctx context.Context, entry *types.SyncLog)
}

type syncWriter struct {
	db          *gorm.DB
	log         *logger.Logger
	studentRepo repos.StudentRepo
	problemRepo repos.ProblemRepo
	contestRepo repos.ContestRepo
	syncLogRepo repos.SyncLogRepo
}

func NewSyncWriter(db *gorm.DB, log *logger.Logger, studentRepo repos.StudentRepo, problemRepo repos.ProblemRepo, contestRepo repos.ContestRepo, syncLogRepo repos.SyncLogRepo) SyncWriter {
	serviceLog := log.With("service", "SyncWriter")
	return &syncWriter{
		db:          db,
		log:         serviceLog,
		studentRepo: studentRepo,
		problemRepo: problemRepo,
		contestRepo: contestRepo,
		syncLogRepo: syncLogRepo,
	}
}

// Commit replaces the student's problem and contest rows with the given sets
// and overwrites the engine-owned summary fields, all inside one
// transaction. Full-replace, not upsert: rows for problems that vanished
// upstream are dropped with the delete. Re-running a sync is always safe
// because the state is rebuilt from scratch each time.
func (sw *syncWriter) Commit(ctx context.Context, studentID uuid.UUID, problems []*types.Problem, contests []*types.Contest, snapshot SyncSnapshot) error {
	statsJSON, err := json.Marshal(snapshot.Stats)
	if err != nil {
		return fmt.Errorf("marshal stats snapshot: %w", err)
	}

	return sw.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sw.problemRepo.DeleteByStudentID(ctx, tx, studentID); err != nil {
			return fmt.Errorf("delete problems: %w", err)
		}
		if err := sw.contestRepo.DeleteByStudentID(ctx, tx, studentID); err != nil {
			return fmt.Errorf("delete contests: %w", err)
		}
		if err := sw.problemRepo.CreateBatch(ctx, tx, problems); err != nil {
			return fmt.Errorf("insert problems: %w", err)
		}
		if err := sw.contestRepo.CreateBatch(ctx, tx, contests); err != nil {
			return fmt.Errorf("insert contests: %w", err)
		}
		if err := sw.studentRepo.UpdateSyncFields(ctx, tx, studentID, snapshot.CurrentRating, snapshot.MaxRating, snapshot.IsActive, datatypes.JSON(statsJSON), snapshot.SyncedAt); err != nil {
			return fmt.Errorf("update student: %w", err)
		}
		return nil
	})
}

// LogOutcome appends one audit row per sync attempt. It runs outside the
// data transaction on purpose: a failed commit must still leave an attempt
// record. A failure to write the log itself is logged and swallowed so it
// cannot mask the sync outcome.
func (sw *syncWriter) LogOutcome(ctx context.Context, entry *types.SyncLog) {
	if err := sw.syncLogRepo.Create(ctx, nil, entry); err != nil {
		sw.log.Error("Failed to append sync log entry", "student_id", entry.StudentID, "status", entry.Status, "error", err)
	}
}
