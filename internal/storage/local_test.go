package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *LocalStorage {
	t.Helper()
	store, errNew := NewLocalStorage(Config{
		BasePath: filepath.Join(t.TempDir(), "uploads"),
		BaseURL:  "/files/",
	})
	if errNew != nil {
		t.Fatalf("new local storage: %v", errNew)
	}
	return store
}

func TestSaveCreatesBucketAndWritesBlob(t *testing.T) {
	store := newTestStore(t)

	errSave := store.Save(context.Background(), "quotes", "piece.stl", strings.NewReader("solid model"))
	if errSave != nil {
		t.Fatalf("save: %v", errSave)
	}

	data, errRead := os.ReadFile(filepath.Join(store.BasePath(), "quotes", "piece.stl"))
	if errRead != nil {
		t.Fatalf("read stored blob: %v", errRead)
	}
	if string(data) != "solid model" {
		t.Fatalf("unexpected stored content: %q", data)
	}
}

func TestDeleteIgnoresMissingBlob(t *testing.T) {
	store := newTestStore(t)

	if errDelete := store.Delete(context.Background(), "quotes", "missing.stl"); errDelete != nil {
		t.Fatalf("expected missing blob to be ignored, got %v", errDelete)
	}

	if errSave := store.Save(context.Background(), "quotes", "piece.stl", strings.NewReader("x")); errSave != nil {
		t.Fatalf("save: %v", errSave)
	}
	if errDelete := store.Delete(context.Background(), "quotes", "piece.stl"); errDelete != nil {
		t.Fatalf("delete: %v", errDelete)
	}
	if _, errStat := os.Stat(filepath.Join(store.BasePath(), "quotes", "piece.stl")); !os.IsNotExist(errStat) {
		t.Fatalf("expected blob removed, got %v", errStat)
	}
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		bucket string
		name   string
	}{
		{"../outside", "x.stl"},
		{"quotes", "../escape.stl"},
		{"quotes/nested", "x.stl"},
		{".hidden", "x.stl"},
		{"", "x.stl"},
		{"quotes", ""},
	}
	for _, tc := range cases {
		errSave := store.Save(context.Background(), tc.bucket, tc.name, strings.NewReader("x"))
		if errSave == nil {
			t.Fatalf("expected rejection for bucket=%q name=%q", tc.bucket, tc.name)
		}
	}
}

func TestPublicURLJoinsBaseAndPath(t *testing.T) {
	store := newTestStore(t)

	if got := store.PublicURL("quotes", "piece.stl"); got != "/files/quotes/piece.stl" {
		t.Fatalf("unexpected public url: %q", got)
	}
}
