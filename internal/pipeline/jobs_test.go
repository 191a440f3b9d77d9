package pipeline

import (
	"strings"
	"testing"
	"time"

	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

func TestCacheKey_SeparatesExtensions(t *testing.T) {
	data := []byte("0171  Consultation")
	if cacheKey(data, "a.txt") == cacheKey(data, "a.md") {
		t.Error("expected different keys for different extensions")
	}
	if cacheKey(data, "a.txt") != cacheKey(data, "B.TXT") {
		t.Error("expected extension casing to be ignored")
	}
}

func TestNewJob_QueuedWithULID(t *testing.T) {
	job := NewJob("schedule.pdf", []byte("data"))
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("new job = %s/%s", job.Status, job.Phase)
	}
	if len(job.ID) != 26 {
		t.Errorf("expected 26-char ULID, got %q", job.ID)
	}
	if string(job.FileData()) != "data" {
		t.Errorf("file data = %q", job.FileData())
	}
}

func TestNewJob_IDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewJob("x.txt", nil).ID
		if seen[id] {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = true
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("schedule.pdf", nil)

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting"},
		{StatusMarking, "marking"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_AddError(t *testing.T) {
	job := NewJob("schedule.pdf", nil)
	job.AddError("page 3 unreadable")
	job.AddError("page 9 unreadable")

	snap := job.Snapshot()
	if len(snap.Progress.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Progress.Errors))
	}
	if snap.Progress.Errors[0] != "page 3 unreadable" {
		t.Errorf("expected first error %q, got %q", "page 3 unreadable", snap.Progress.Errors[0])
	}
}

func TestJob_SetResult(t *testing.T) {
	job := NewJob("schedule.txt", nil)
	output := []string{"«L1:SURGERY07»", "SURGERY (07)"}
	stats := marker.Stats{TotalLines: 2, L1: 1}

	job.SetExtracted(3, 120)
	job.SetResult(output, stats, false)

	snap := job.Snapshot()
	if snap.Progress.TotalPages != 3 || snap.Progress.TotalLines != 120 {
		t.Errorf("extraction counts = %d pages / %d lines", snap.Progress.TotalPages, snap.Progress.TotalLines)
	}
	if snap.Progress.OutputLines != 2 || snap.Progress.Markers.L1 != 1 {
		t.Errorf("result progress = %+v", snap.Progress)
	}
	if snap.Progress.CacheHit {
		t.Error("fresh result flagged as cache hit")
	}
	if got := job.Output(); strings.Join(got, "\n") != strings.Join(output, "\n") {
		t.Errorf("output = %q", got)
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil errors slice.
	job := NewJob("schedule.pdf", nil)
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected non-nil errors slice in snapshot")
	}
	if len(snap.Progress.Errors) != 0 {
		t.Errorf("expected empty errors, got %d", len(snap.Progress.Errors))
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("schedule.pdf", nil)
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != job.ID {
		t.Errorf("expected ID %q, got %q", job.ID, got.ID)
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := NewJob("old.pdf", nil)
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new.pdf", nil)
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}

func TestStats_Add(t *testing.T) {
	var total marker.Stats
	total.Add(marker.Stats{TotalLines: 10, L1: 1, Codes: 3, Provisional: 1})
	total.Add(marker.Stats{TotalLines: 5, L2: 2, Codes: 1, Asterisked: 1})

	if total.TotalLines != 15 || total.L1 != 1 || total.L2 != 2 {
		t.Errorf("total = %+v", total)
	}
	if total.Codes != 4 || total.Provisional != 1 || total.Asterisked != 1 {
		t.Errorf("total = %+v", total)
	}
}
