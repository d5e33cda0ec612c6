package main

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// folderOpener returns the command that shows a folder in the platform's
// file manager.
func folderOpener(goos string) []string {
	switch goos {
	case "windows":
		return []string{"explorer"}
	case "darwin":
		return []string{"open"}
	default:
		return []string{"xdg-open"}
	}
}

// revealFolder opens the folder holding path without waiting for the file
// manager to exit.
func revealFolder(path string) error {
	dir := filepath.Dir(path)
	args := append(folderOpener(runtime.GOOS), dir)

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open folder %s: %w", dir, err)
	}
	logger.Debug("folder opened", "command", args[0], "dir", dir)
	go func() { _ = cmd.Wait() }()
	return nil
}
