package main

import "time"

// Route constants
const (
	RouteHome       = "/"
	RouteArtifact   = "/rules/:file"
	RouteManifest   = "/manifest.json"
	RouteRegenerate = "/regenerate"
	RouteHealth     = "/healthz"
)

// Output file constants
const (
	ManifestFile    = "manifest.json"
	GalleryFile     = "index.html"
	ArtifactPattern = "gif*.gif"
)

// Configuration defaults
const (
	DefaultOutputDir      = "docs"
	DefaultPort           = "8080"
	DefaultWorkers        = 1
	DefaultStaticCacheAge = 5 * time.Minute
	DefaultRateLimitRPS   = 1
	DefaultRateLimitBurst = 3
)

// Error message constants
const (
	ErrorArtifactNotFound = "Artifact not found."
	ErrorNoManifest       = "Nothing generated yet."
	ErrorGenerating       = "Generation failed."
)

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)
