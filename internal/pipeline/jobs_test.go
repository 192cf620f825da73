package pipeline

import (
	"testing"
	"time"

	"github.com/dgallion1/tocmap/internal/match"
	"github.com/dgallion1/tocmap/internal/outline"
)

func TestJob_StateTransitions(t *testing.T) {
	job := NewJob("book.pdf", []byte("%PDF-"), nil, "3-4")

	if job.Status != StatusQueued {
		t.Fatalf("expected new job to be queued, got %q", job.Status)
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusExtracting, "extracting pages"},
		{StatusReadingTOC, "reading printed toc"},
		{StatusMapping, "mapping printed numbers"},
		{StatusResolving, "resolving entries"},
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
	job := NewJob("book.pdf", nil, nil, "")
	job.AddError("open pdf: bad header")
	job.AddError("extract pages: page 7 unreadable")

	snap := job.Snapshot()
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Errors))
	}
	if snap.Errors[0] != "open pdf: bad header" {
		t.Errorf("expected first error %q, got %q", "open pdf: bad header", snap.Errors[0])
	}
}

func TestJob_PageProgress(t *testing.T) {
	job := NewJob("book.pdf", nil, nil, "")
	job.SetPageProgress(3, 10)

	snap := job.Snapshot()
	if snap.Progress.PagesExtracted != 3 {
		t.Errorf("expected 3 pages extracted, got %d", snap.Progress.PagesExtracted)
	}
	if snap.Progress.TotalPages != 10 {
		t.Errorf("expected 10 total pages, got %d", snap.Progress.TotalPages)
	}
}

func TestJob_Results(t *testing.T) {
	job := NewJob("book.pdf", nil, nil, "")
	if job.Results() != nil {
		t.Fatal("expected no results before completion")
	}

	job.SetResults([]ResolvedEntry{
		{Title: "Introduction", Level: 1, PageIndex: 4, Confidence: match.Verified},
	})

	got := job.Results()
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].PageIndex != 4 || got[0].Confidence != match.Verified {
		t.Errorf("unexpected result %+v", got[0])
	}
	if job.Snapshot().Progress.TotalEntries != 1 {
		t.Errorf("expected total entries 1, got %d", job.Snapshot().Progress.TotalEntries)
	}
}

func TestJob_EntryList(t *testing.T) {
	entries := []outline.Entry{{Title: "Preface", Page: 3, Level: 1}}
	job := NewJob("book.pdf", nil, entries, "")

	got := job.EntryList()
	if len(got) != 1 || got[0].Title != "Preface" {
		t.Fatalf("unexpected entry list %+v", got)
	}

	// Entries read off the printed TOC replace the initial nil list.
	job2 := NewJob("book.pdf", nil, nil, "1-2")
	if job2.EntryList() != nil {
		t.Fatal("expected nil entry list before reading")
	}
	job2.SetEntries(entries)
	if len(job2.EntryList()) != 1 {
		t.Fatal("expected entry list after SetEntries")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := NewJob("book.pdf", nil, nil, "")
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

	expired := NewJob("old.pdf", nil, nil, "")
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	fresh := NewJob("new.pdf", nil, nil, "")
	store.Put(fresh)

	store.Cleanup()

	if store.Get(expired.ID) != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get(fresh.ID) == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestGenerateULID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateULID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q (%d chars)", id, len(id))
		}
		if seen[id] {
			t.Fatalf("duplicate ULID %q", id)
		}
		seen[id] = true
	}
}
