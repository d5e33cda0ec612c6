package ooxml

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

const pathPlaceholder = "{path}"

// DefaultViewer returns the slideshow command for the current platform.
func DefaultViewer() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"cmd", "/c", "start", "", "powerpnt.exe", "/s", pathPlaceholder}
	case "darwin":
		return []string{"open", pathPlaceholder}
	default:
		return []string{"soffice", "--show", pathPlaceholder}
	}
}

// viewerCommand expands the placeholder, appending the path when absent.
func viewerCommand(viewer []string, path string) []string {
	args := make([]string, 0, len(viewer)+1)
	substituted := false
	for _, a := range viewer {
		if strings.Contains(a, pathPlaceholder) {
			a = strings.ReplaceAll(a, pathPlaceholder, path)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, path)
	}
	return args
}

// runViewer starts the viewer detached; it keeps running after we return.
func runViewer(viewer []string, path string, log *slog.Logger) error {
	if len(viewer) == 0 {
		return fmt.Errorf("%w: no viewer configured", ErrViewer)
	}
	args := viewerCommand(viewer, path)

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrViewer, args[0], err)
	}
	log.Info("slideshow viewer started", "command", args[0], "pid", cmd.Process.Pid, "path", path)

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("slideshow viewer exited", "command", args[0], "error", err)
		}
	}()
	return nil
}
