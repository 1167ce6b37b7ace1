package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/samber/lo"

	"baldarules/internal/types"
)

// saveManifest writes the run manifest into dir.
func saveManifest(dir string, m *types.Manifest) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logWarn("Failed to create output directory: %v", err)
		return err
	}

	path := filepath.Join(dir, ManifestFile)
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		logWarn("Failed to marshal manifest for run %s: %v", m.RunID, err)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logWarn("Failed to write manifest %s: %v", path, err)
		return err
	}
	logInfo("Saved manifest: %s (%d artifact%s)", path, len(m.Artifacts), plural(len(m.Artifacts)))
	return nil
}

// loadManifest reads the manifest from dir. A manifest that is corrupt or
// names a missing artifact is reported as os.ErrNotExist.
func loadManifest(dir string) (*types.Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		logInfo("No manifest at %s", path)
		return nil, err
	}

	var m types.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logWarn("Manifest %s is corrupted, ignoring: %v", path, err)
		return nil, os.ErrNotExist
	}
	if m.RunID == "" || len(m.Artifacts) == 0 {
		logWarn("Manifest %s has invalid structure (run: %q, artifacts: %d), ignoring", path, m.RunID, len(m.Artifacts))
		return nil, os.ErrNotExist
	}

	missing := lo.Filter(m.Files(), func(f string, _ int) bool {
		_, err := os.Stat(filepath.Join(dir, f))
		return err != nil
	})
	if len(missing) > 0 {
		logWarn("Manifest %s names missing artifacts %v, ignoring", path, missing)
		return nil, os.ErrNotExist
	}

	logInfo("Loaded manifest %s (run %s, %d artifacts)", path, m.RunID, len(m.Artifacts))
	return &m, nil
}

// cleanupStaleArtifacts removes animations in dir that no current rule
// produces and returns how many were removed.
func cleanupStaleArtifacts(dir string, keep []string) (int, error) {
	if !dirExists(dir) {
		logInfo("Output directory %s doesn't exist, skipping cleanup", dir)
		return 0, nil
	}
	logInfo("Starting cleanup of stale artifacts in directory: %s", dir)

	matches, err := filepath.Glob(filepath.Join(dir, ArtifactPattern))
	if err != nil {
		return 0, err
	}

	removedCount := 0
	errorCount := 0
	for _, path := range matches {
		if lo.Contains(keep, filepath.Base(path)) {
			continue
		}
		if err := os.Remove(path); err != nil {
			logWarn("Failed to remove stale artifact %s: %v", path, err)
			errorCount++
			continue
		}
		logInfo("Removed stale artifact: %s", path)
		removedCount++
	}

	logInfo("Cleanup completed: removed %d file%s, %d error%s", removedCount, plural(removedCount), errorCount, plural(errorCount))
	return removedCount, nil
}
