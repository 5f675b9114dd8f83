package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/resound-dev/resound/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.InitQuiet("warn", ""); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestWatchReportsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.stl")
	writeFile(t, path, "solid a\nendsolid a\n")

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writeFile(t, path, "solid b\nendsolid b\n")

	select {
	case got := <-w.Changed():
		abs, _ := filepath.Abs(path)
		if got != abs {
			t.Errorf("Changed() = %q, want %q", got, abs)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatchDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.stl")
	writeFile(t, path, "v1")

	w, err := Watch(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeFile(t, path, "burst")
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	// The burst collapsed into the single event consumed above.
	select {
	case <-w.Changed():
		t.Error("got a second event for a single debounced burst")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.stl")
	writeFile(t, path, "v1")

	w, err := Watch(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "other.stl"), "unrelated")

	select {
	case <-w.Changed():
		t.Error("got an event for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "missing", "model.stl"), time.Millisecond)
	if err == nil {
		t.Fatal("Watch succeeded for a missing directory")
	}
}
