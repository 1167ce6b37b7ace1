package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"baldarules/internal/animate"
	"baldarules/internal/frame"
	"baldarules/internal/scenario"
)

func main() {
	var (
		rule     = flag.String("rule", "", "Rule to dump ("+strings.Join(scenario.Names(), ", ")+")")
		outDir   = flag.String("out", "", "Output directory")
		fontPath = flag.String("font", "", "TrueType font (bundled Go fonts if empty)")
	)
	flag.Parse()

	if *rule == "" || *outDir == "" {
		log.Fatal("Usage: go run ./cmd/framedump -rule=<name> -out=<dir> [-font=<file.ttf>]")
	}

	r, err := scenario.Lookup(*rule)
	if err != nil {
		log.Fatalf("Failed to find rule: %v", err)
	}

	fonts, fallback := frame.LoadFonts(*fontPath)
	if fallback && *fontPath != "" {
		log.Printf("Could not load %s, using bundled Go fonts", *fontPath)
	}
	composer := frame.NewComposer(frame.DefaultLayout(), fonts)
	res, err := scenario.New(animate.New(composer, animate.DefaultTiming())).Assemble(r)
	if err != nil {
		log.Fatalf("Failed to assemble %s: %v", r.Name, err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	var timings strings.Builder
	for i, f := range res.Frames {
		path := filepath.Join(*outDir, fmt.Sprintf("frame_%03d.png", i))
		if err := savePNG(path, f); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Fprintf(&timings, "%d\t%d\n", i, f.DurationMS)
	}
	fmt.Fprintf(&timings, "total\t%d\n", res.TotalMS())

	timingsPath := filepath.Join(*outDir, "timings.txt")
	if err := os.WriteFile(timingsPath, []byte(timings.String()), 0644); err != nil {
		log.Fatalf("Failed to write timings: %v", err)
	}

	fmt.Printf("Dumped %d frames of %s to %s (%d ms)\n", len(res.Frames), r.Name, *outDir, res.TotalMS())
}

func savePNG(path string, f frame.Frame) error {
	dc := gg.NewContextForImage(f.Image())
	defer dc.Close()
	return dc.SavePNG(path)
}
