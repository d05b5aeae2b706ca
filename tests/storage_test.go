package tests

import (
	"context"
	"east/internal/domain/models"
	"east/internal/storage/leveldb"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"
)

func newTestStorage(t *testing.T) *leveldb.Storage {
	t.Helper()
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))
	storage, err := leveldb.NewStorage(log, t.TempDir()+"/east-test.db")
	if err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	t.Cleanup(func() {
		storage.StopWorkers()
		storage.Close()
	})
	return storage
}

func TestSaveAndGetText(t *testing.T) {
	storage := newTestStorage(t)

	text := &models.Text{
		Name:      "greeting",
		Content:   "hello world of suffix trees",
		Fragments: []string{"HELLOWORLDOF", "SUFFIXTREES"},
	}
	name, err := storage.SaveText(context.Background(), text)
	if err != nil {
		t.Fatalf("Failed to save text: %v", err)
	}
	if name != "greeting" {
		t.Fatalf("Unexpected name returned: %q", name)
	}

	loaded, err := storage.GetText(context.Background(), "greeting")
	if err != nil {
		t.Fatalf("Failed to load text: %v", err)
	}
	if loaded.Content != text.Content {
		t.Errorf("Content mismatch: %q", loaded.Content)
	}

	fragments, err := storage.GetFragments(context.Background(), "greeting")
	if err != nil {
		t.Fatalf("Failed to load fragments: %v", err)
	}
	if !reflect.DeepEqual(fragments, text.Fragments) {
		t.Errorf("Fragments mismatch: %v", fragments)
	}
}

func TestGetTextNotFound(t *testing.T) {
	storage := newTestStorage(t)

	if _, err := storage.GetText(context.Background(), "nope"); !errors.Is(err, leveldb.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListAndDeleteTexts(t *testing.T) {
	storage := newTestStorage(t)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := storage.SaveText(context.Background(), &models.Text{Name: name, Content: name}); err != nil {
			t.Fatalf("Failed to save %q: %v", name, err)
		}
	}

	names, err := storage.ListTexts(context.Background())
	if err != nil {
		t.Fatalf("Failed to list texts: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("Expected 3 texts, got %v", names)
	}

	if err := storage.DeleteText(context.Background(), "b"); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	names, _ = storage.ListTexts(context.Background())
	if len(names) != 2 {
		t.Errorf("Expected 2 texts after delete, got %v", names)
	}
}

func TestSaveAndGetTable(t *testing.T) {
	storage := newTestStorage(t)

	payload := []byte(`{"MINING":{"a":0.5}}`)
	if err := storage.SaveTable(context.Background(), "run1", payload); err != nil {
		t.Fatalf("Failed to save table: %v", err)
	}
	data, err := storage.GetTable(context.Background(), "run1")
	if err != nil {
		t.Fatalf("Failed to load table: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Table payload mismatch: %s", data)
	}
}

func TestDatabaseStats(t *testing.T) {
	storage := newTestStorage(t)

	stats, err := storage.GetDatabaseStats(context.Background())
	if err != nil {
		t.Fatalf("Failed to get database stats: %v", err)
	}
	t.Logf("Stats: %s", stats)
}
