package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/codetrack-backend/internal/clients/codeforces"
	"github.com/yungbote/codetrack-backend/internal/repos"
	"github.com/yungbote/codetrack-backend/internal/types"
)

// fakeJudge serves canned histories keyed by handle and fails any handle
// listed in errs.
type fakeJudge struct {
	mu      sync.Mutex
	subs    map[string][]codeforces.Submission
	changes map[string][]codeforces.RatingChange
	errs    map[string]error
	calls   []string
}

func (fj *fakeJudge) FetchHistory(ctx context.Context, handle string) ([]codeforces.Submission, []codeforces.RatingChange, error) {
	fj.mu.Lock()
	fj.calls = append(fj.calls, handle)
	fj.mu.Unlock()

	if err, ok := fj.errs[handle]; ok {
		return nil, nil, err
	}
	return fj.subs[handle], fj.changes[handle], nil
}

func newTestSyncService(t *testing.T, gdb *gorm.DB, judge codeforces.Client) *syncService {
	t.Helper()
	log := testLogger(t)
	studentRepo := repos.NewStudentRepo(gdb, log)
	settingsRepo := repos.NewSettingsRepo(gdb, log)
	syncLogRepo := repos.NewSyncLogRepo(gdb, log)
	writer := NewSyncWriter(
		gdb,
		log,
		studentRepo,
		repos.NewProblemRepo(gdb, log),
		repos.NewContestRepo(gdb, log),
		syncLogRepo,
	)
	svc := NewSyncService(gdb, log, judge, studentRepo, settingsRepo, syncLogRepo, writer, time.Millisecond).(*syncService)
	svc.now = func() time.Time { return time.Unix(1700000000, 0).UTC() }
	return svc
}

func TestSyncStudentHappyPath(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	student := seedStudent(t, gdb, "Alice", "alice_cf")
	now := time.Unix(1700000000, 0).UTC()

	judge := &fakeJudge{
		subs: map[string][]codeforces.Submission{
			"alice_cf": {
				{ProblemID: "100A", ContestID: "100", Name: "Theatre Square", Rating: intPtr(1000), Verdict: types.VerdictOK, SolvedAt: now.Add(-2 * time.Hour)},
				{ProblemID: "100A", ContestID: "100", Name: "Theatre Square", Rating: intPtr(1000), Verdict: types.VerdictOK, SolvedAt: now.Add(-time.Hour)},
				{ProblemID: "200B", ContestID: "200", Name: "Rejected", Rating: intPtr(1400), Verdict: types.VerdictWrongAnswer, SolvedAt: now.Add(-time.Hour)},
				{ProblemID: "300C", ContestID: "300", Name: "Accepted Later", Rating: intPtr(1200), Verdict: types.VerdictOK, SolvedAt: now.Add(-30 * time.Minute)},
			},
		},
		changes: map[string][]codeforces.RatingChange{
			"alice_cf": {
				{ContestID: "100", Name: "Round 100", Date: now.Add(-48 * time.Hour), Rank: 120, OldRating: 1200, NewRating: 1260},
				{ContestID: "300", Name: "Round 300", Date: now.Add(-24 * time.Hour), Rank: 80, OldRating: 1260, NewRating: 1340},
			},
		},
	}

	svc := newTestSyncService(t, gdb, judge)
	result, err := svc.SyncStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("SyncStudent: %v", err)
	}

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.Student != "Alice" {
		t.Errorf("result.Student = %q, want Alice", result.Student)
	}
	if result.ProblemsSynced != 2 {
		t.Errorf("ProblemsSynced = %d, want 2 (dedup + verdict filter)", result.ProblemsSynced)
	}
	if result.ContestsSynced != 2 {
		t.Errorf("ContestsSynced = %d, want 2", result.ContestsSynced)
	}

	var updated types.Student
	if err := gdb.First(&updated, "id = ?", student.ID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if updated.CurrentRating != 1340 {
		t.Errorf("CurrentRating = %d, want 1340 (last contest)", updated.CurrentRating)
	}
	if updated.MaxRating != 1340 {
		t.Errorf("MaxRating = %d, want 1340", updated.MaxRating)
	}
	if !updated.IsActive {
		t.Error("expected student active, solves inside the window")
	}

	var entries []types.SyncLog
	if err := gdb.Where("student_id = ?", student.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load sync logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 sync log entry, got %d", len(entries))
	}
	if entries[0].SyncType != types.SyncTypeManual || entries[0].Status != types.SyncStatusSuccess {
		t.Errorf("log entry = %s/%s, want manual/success", entries[0].SyncType, entries[0].Status)
	}
	if entries[0].ProblemsSynced != 2 || entries[0].ContestsSynced != 2 {
		t.Errorf("log counts = %d/%d, want 2/2", entries[0].ProblemsSynced, entries[0].ContestsSynced)
	}
}

func TestSyncStudentFetchFailureLogsAndReports(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	student := seedStudent(t, gdb, "Bob", "bob_cf")
	judge := &fakeJudge{errs: map[string]error{"bob_cf": errors.New("handle not found")}}

	svc := newTestSyncService(t, gdb, judge)
	result, err := svc.SyncStudent(ctx, student.ID)
	if err != nil {
		t.Fatalf("SyncStudent: %v", err)
	}

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error != "handle not found" {
		t.Errorf("result.Error = %q, want %q", result.Error, "handle not found")
	}

	var entries []types.SyncLog
	if err := gdb.Where("student_id = ?", student.ID).Find(&entries).Error; err != nil {
		t.Fatalf("load sync logs: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 failed log entry, got %d", len(entries))
	}
	if entries[0].Status != types.SyncStatusFailed || entries[0].ErrorMessage != "handle not found" {
		t.Errorf("log entry = %s %q, want failed %q", entries[0].Status, entries[0].ErrorMessage, "handle not found")
	}
}

func TestSyncStudentUnknownIDReturnsError(t *testing.T) {
	gdb := openTestDB(t)
	svc := newTestSyncService(t, gdb, &fakeJudge{})

	_, err := svc.SyncStudent(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for unknown student id")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestSyncAllContinuesPastFailures(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	seedStudent(t, gdb, "Alice", "alice_cf")
	seedStudent(t, gdb, "Bob", "bob_cf")
	seedStudent(t, gdb, "Carol", "carol_cf")

	now := time.Unix(1700000000, 0).UTC()
	judge := &fakeJudge{
		subs: map[string][]codeforces.Submission{
			"alice_cf": {{ProblemID: "1A", ContestID: "1", Name: "One", Verdict: types.VerdictOK, SolvedAt: now.Add(-time.Hour)}},
			"carol_cf": {{ProblemID: "2A", ContestID: "2", Name: "Two", Verdict: types.VerdictOK, SolvedAt: now.Add(-time.Hour)}},
		},
		errs: map[string]error{"bob_cf": errors.New("judge unavailable")},
	}

	svc := newTestSyncService(t, gdb, judge)
	batch := svc.SyncAll(ctx)

	if !batch.Success {
		t.Fatal("batch should report success even with per-student failures")
	}
	if len(batch.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(batch.Results))
	}

	wantOrder := []string{"Alice", "Bob", "Carol"}
	for i, want := range wantOrder {
		if batch.Results[i].Student != want {
			t.Errorf("results[%d].Student = %q, want %q", i, batch.Results[i].Student, want)
		}
	}
	if !batch.Results[0].Success || batch.Results[1].Success || !batch.Results[2].Success {
		t.Errorf("success flags = %v/%v/%v, want true/false/true",
			batch.Results[0].Success, batch.Results[1].Success, batch.Results[2].Success)
	}

	if got := []string{"alice_cf", "bob_cf", "carol_cf"}; len(judge.calls) != 3 ||
		judge.calls[0] != got[0] || judge.calls[1] != got[1] || judge.calls[2] != got[2] {
		t.Errorf("judge calls = %v, want %v", judge.calls, got)
	}

	var settings types.AppSettings
	if err := gdb.First(&settings).Error; err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.LastSync == nil {
		t.Fatal("expected last_sync to be set after the batch")
	}
	if !settings.LastSync.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("last_sync = %v, want fixed clock time", settings.LastSync)
	}

	var failedCount int64
	if err := gdb.Model(&types.SyncLog{}).Where("status = ?", types.SyncStatusFailed).Count(&failedCount).Error; err != nil {
		t.Fatalf("count failed logs: %v", err)
	}
	if failedCount != 1 {
		t.Errorf("failed log entries = %d, want 1", failedCount)
	}
	var total int64
	if err := gdb.Model(&types.SyncLog{}).Count(&total).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if total != 3 {
		t.Errorf("total log entries = %d, want 3 (one per attempt)", total)
	}
}

func TestSyncAllMarksScheduledType(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	seedStudent(t, gdb, "Dorg", "dorg_cf")
	judge := &fakeJudge{}

	svc := newTestSyncService(t, gdb, judge)
	svc.SyncAll(ctx)

	var entry types.SyncLog
	if err := gdb.First(&entry).Error; err != nil {
		t.Fatalf("load sync log: %v", err)
	}
	if entry.SyncType != types.SyncTypeScheduled {
		t.Errorf("sync type = %s, want scheduled", entry.SyncType)
	}
}
