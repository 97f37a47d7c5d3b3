package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

const envFFmpegPath = "CUETRACK_FFMPEG_PATH"

var ErrNotFound = errors.New("ffmpeg binary not found")

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath string
)

// ffmpeg from CUETRACK_FFMPEG_PATH or PATH, resolved once per process
func FFmpegPath() (string, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = Resolve("")
	})
	return ensurePath, ensureErr
}

// explicit path first, then the env override, then PATH
func Resolve(explicit string) (string, error) {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if !fileExists(explicit) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}

	if fromEnv := strings.TrimSpace(os.Getenv(envFFmpegPath)); fromEnv != "" {
		if !fileExists(fromEnv) {
			return "", fmt.Errorf("%w: %s=%s", ErrNotFound, envFFmpegPath, fromEnv)
		}
		return fromEnv, nil
	}

	found, err := exec.LookPath("ffmpeg" + executableSuffix())
	if err != nil {
		return "", fmt.Errorf(
			"%w: install ffmpeg or set %s",
			ErrNotFound,
			envFFmpegPath,
		)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
