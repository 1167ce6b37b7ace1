package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// galleryHandler renders the gallery of the last completed run.
func (app *App) galleryHandler(c *gin.Context) {
	m := app.Manifest()
	if m == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorNoManifest})
		return
	}
	page, err := renderGallery(m, "/rules/")
	if err != nil {
		logWarn("[request_id=%v] Failed to render gallery: %v", requestID(c.Request.Context()), err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// artifactHandler serves one animation named in the manifest.
func (app *App) artifactHandler(c *gin.Context) {
	a, ok := app.Manifest().Find(c.Param("file"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorArtifactNotFound})
		return
	}
	c.Header("Content-Type", "image/gif")
	c.File(filepath.Join(app.OutputDir, a.File))
}

// manifestHandler returns the manifest of the last completed run.
func (app *App) manifestHandler(c *gin.Context) {
	m := app.Manifest()
	if m == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrorNoManifest})
		return
	}
	c.JSON(http.StatusOK, m)
}

// regenerateHandler reruns generation and swaps in the new manifest.
func (app *App) regenerateHandler(c *gin.Context) {
	ctx := c.Request.Context()
	reqID := requestID(ctx)
	logInfo("[request_id=%v] Regeneration requested", reqID)

	m, err := app.generateAll(ctx)
	if err != nil {
		logWarn("[request_id=%v] Regeneration failed: %v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorGenerating})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"runId":     m.RunID,
		"artifacts": len(m.Artifacts),
	})
}

// healthHandler reports liveness and what was last generated.
func (app *App) healthHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	m := app.Manifest()
	runID := ""
	if m != nil {
		runID = m.RunID
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"run_id":    runID,
		"artifacts": len(m.Files()),
		"font":      app.Fonts.Name,
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
