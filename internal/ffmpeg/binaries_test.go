package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFakeBinary(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "ffmpeg"+executableSuffix())
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("failed to write fake binary: %v", err)
	}
	return path
}

func TestResolveExplicit(t *testing.T) {
	path := writeFakeBinary(t, t.TempDir())

	got, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}

	_, err = Resolve(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolveEnv(t *testing.T) {
	path := writeFakeBinary(t, t.TempDir())
	t.Setenv(envFFmpegPath, path)

	got, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}

func TestResolveMissing(t *testing.T) {
	t.Setenv(envFFmpegPath, "")
	t.Setenv("PATH", t.TempDir())

	_, err := Resolve("")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
