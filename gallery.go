package main

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"baldarules/internal/types"
)

var galleryTemplate = template.Must(template.New(GalleryFile).Funcs(template.FuncMap{
	"seconds": formatMS,
	"kib":     formatSize,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>Balda: rules of the game</title>
	<style>
		body {
			margin: 2rem auto;
			max-width: 60rem;
			padding: 0 1rem;
			font-family: system-ui, sans-serif;
			background: #fefefe;
			color: #282828;
		}
		.grid {
			display: grid;
			grid-template-columns: repeat(auto-fill, minmax(26rem, 1fr));
			gap: 1.5rem;
		}
		figure {
			margin: 0;
			padding: 1rem;
			border: 1px solid #bdbdbd;
			border-radius: 6px;
			background: #ffffff;
		}
		img {
			max-width: 100%;
			height: auto;
		}
		figcaption small {
			display: block;
			color: #8c8c8c;
		}
	</style>
</head>
<body>
	<h1>Balda: rules of the game</h1>
	<p>Each animation plays two legal turns, then one that breaks a rule.</p>
	<div class="grid">
	{{- range .Manifest.Artifacts}}
		<figure id="{{.Rule}}">
			<img src="{{$.Base}}{{.File}}" width="{{.Width}}" height="{{.Height}}" alt="{{.Title}}">
			<figcaption>
				{{.Title}}
				<small>{{.Frames}} frames, {{seconds .DurationMS}}, {{kib .Size}}</small>
			</figcaption>
		</figure>
	{{- end}}
	</div>
	<footer><small>Run {{.Manifest.RunID}}, {{.Manifest.GeneratedAt.Format "2006-01-02 15:04 MST"}}</small></footer>
</body>
</html>
`))

// newMinifier returns a minifier for the gallery page and its inline CSS.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	return m
}

// renderGallery renders the minified gallery page. base prefixes every
// artifact link.
func renderGallery(m *types.Manifest, base string) ([]byte, error) {
	var page bytes.Buffer
	if err := galleryTemplate.Execute(&page, struct {
		Manifest *types.Manifest
		Base     string
	}{m, base}); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := newMinifier().Minify("text/html", &out, &page); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// writeGallery writes the gallery page next to the artifacts it links.
func writeGallery(dir string, m *types.Manifest) error {
	page, err := renderGallery(m, "")
	if err != nil {
		return err
	}
	path := filepath.Join(dir, GalleryFile)
	if err := os.WriteFile(path, page, 0644); err != nil {
		return err
	}
	logInfo("Wrote gallery: %s", path)
	return nil
}
