package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"baldarules/internal/animate"
	"baldarules/internal/encode"
	"baldarules/internal/frame"
	"baldarules/internal/scenario"
	"baldarules/internal/types"
)

// selectRules resolves rule names to scenarios, keeping publication order.
// No names selects every rule.
func selectRules(names []string) ([]scenario.Rule, error) {
	all := scenario.Rules()
	if len(names) == 0 {
		return all, nil
	}
	for _, n := range names {
		if _, err := scenario.Lookup(n); err != nil {
			return nil, err
		}
	}
	return lo.Filter(all, func(r scenario.Rule, _ int) bool {
		return lo.Contains(names, r.Name)
	}), nil
}

// newAssembler builds a scenario assembler with the default layout and pacing.
func (app *App) newAssembler() *scenario.Assembler {
	c := frame.NewComposer(frame.DefaultLayout(), app.Fonts)
	return scenario.New(animate.New(c, animate.DefaultTiming()))
}

// generateAll renders the configured rules into the output directory, then
// writes the manifest and gallery. Only one run proceeds at a time.
func (app *App) generateAll(ctx context.Context) (*types.Manifest, error) {
	app.GenerateMutex.Lock()
	defer app.GenerateMutex.Unlock()

	rules, err := selectRules(app.Rules)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	runID := uuid.NewString()
	logInfo("Generation %s: %d rule%s into %s (workers: %d)", runID, len(rules), plural(len(rules)), app.OutputDir, max(1, app.Workers))

	artifacts := make([]types.Artifact, len(rules))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, app.Workers))
	for i, r := range rules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := app.renderRule(r)
			if err != nil {
				return err
			}
			artifacts[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m := &types.Manifest{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		FontName:    app.Fonts.Name,
		Artifacts:   artifacts,
	}
	if err := saveManifest(app.OutputDir, m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	if err := writeGallery(app.OutputDir, m); err != nil {
		return nil, fmt.Errorf("gallery: %w", err)
	}
	if len(app.Rules) == 0 {
		if _, err := cleanupStaleArtifacts(app.OutputDir, m.Files()); err != nil {
			logWarn("Failed to clean stale artifacts: %v", err)
		}
	}
	app.setManifest(m)
	logInfo("Generation %s finished in %v", runID, time.Since(start).Round(time.Millisecond))
	return m, nil
}

// renderRule assembles one scenario and writes its GIF.
func (app *App) renderRule(r scenario.Rule) (types.Artifact, error) {
	res, err := app.newAssembler().Assemble(r)
	if err != nil {
		return types.Artifact{}, err
	}
	logInfo("Scenario %s: %d frames, %s", r.Name, len(res.Frames), formatMS(res.TotalMS()))

	path := filepath.Join(app.OutputDir, r.File)
	size, err := encode.NewEncoder().WriteFile(path, res.Frames)
	if err != nil {
		return types.Artifact{}, fmt.Errorf("%s: write %s: %w", r.Name, path, err)
	}
	logInfo("Wrote %s (%s)", path, formatSize(size))

	bounds := res.Frames[0].Bounds()
	return types.Artifact{
		Rule:       r.Name,
		File:       r.File,
		Title:      r.Title,
		Violation:  string(r.Violation),
		Frames:     len(res.Frames),
		DurationMS: res.TotalMS(),
		Width:      bounds.Dx(),
		Height:     bounds.Dy(),
		Size:       size,
	}, nil
}
