package internal

import (
	"path/filepath"
	"testing"

	"github.com/vqatools/vqa-annotator/testutil"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "state", "history.db")
	h, err := OpenHistory(path)
	if err != nil {
		t.Fatalf("OpenHistory() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistory_TouchAndRecent(t *testing.T) {
	h := openTestHistory(t)

	if err := h.Touch("/data/first", 10, 2); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}
	if err := h.Touch("/data/second", 5, 5); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent() count = %d, want 2", len(entries))
	}
	// Most recently opened first.
	if entries[0].Folder != "/data/second" {
		t.Errorf("Recent()[0].Folder = %q, want /data/second", entries[0].Folder)
	}
	if entries[0].ImageCount != 5 || entries[0].AnnotatedCount != 5 {
		t.Errorf("Recent()[0] counts = %d/%d, want 5/5", entries[0].AnnotatedCount, entries[0].ImageCount)
	}
	if entries[0].LastOpened.IsZero() {
		t.Error("Recent()[0].LastOpened is zero")
	}
}

func TestHistory_TouchUpdatesExisting(t *testing.T) {
	h := openTestHistory(t)

	if err := h.Touch("/data/folder", 10, 0); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}
	if err := h.Touch("/data/folder", 10, 7); err != nil {
		t.Fatalf("Touch() error = %v", err)
	}

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent() count = %d, want 1", len(entries))
	}
	if entries[0].AnnotatedCount != 7 {
		t.Errorf("AnnotatedCount = %d, want 7", entries[0].AnnotatedCount)
	}
}

func TestHistory_RecentLimit(t *testing.T) {
	h := openTestHistory(t)

	for _, folder := range []string{"/a", "/b", "/c"} {
		if err := h.Touch(folder, 1, 0); err != nil {
			t.Fatalf("Touch() error = %v", err)
		}
	}

	entries, err := h.Recent(2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) count = %d, want 2", len(entries))
	}
}

func TestHistory_RecentEmpty(t *testing.T) {
	h := openTestHistory(t)

	entries, err := h.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on empty db = %v, want none", entries)
	}
}
