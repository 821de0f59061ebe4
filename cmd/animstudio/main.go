package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/config"
	"github.com/ivlev/animstudio/internal/document"
	"github.com/ivlev/animstudio/internal/generate"
	"github.com/ivlev/animstudio/internal/project"
	"github.com/ivlev/animstudio/internal/render"
	"github.com/ivlev/animstudio/internal/scene"
	"github.com/ivlev/animstudio/internal/system"
)

func main() {
	configPtr := flag.String("config", "", "Path to YAML config (defaults apply if empty)")
	inPtr := flag.String("in", "", "Path to a project document (JSON)")
	demoPtr := flag.Bool("demo", false, "Generate the bouncing-ball demo project instead of loading one")
	outPtr := flag.String("out", "", "Save the project document to this path")
	infoPtr := flag.Bool("info", false, "Print a project summary")
	scrubPtr := flag.Int("scrub", -1, "Resolve and print object states at this frame")
	renderPtr := flag.String("render", "", "Export PNG frames into this directory")
	framesPtr := flag.String("frames", "", "Frame range for export, start:end (default: all)")
	spritePtr := flag.String("sprite", "", "Write a sprite sheet PNG to this path")
	onionPtr := flag.String("onion", "", "Write the scrubbed frame with onion skins to this PNG path")
	workersPtr := flag.Int("workers", 0, "Export workers (0 = auto)")
	statsPtr := flag.Bool("stats", false, "Print an export performance report")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Config error: %v", err)
		}
		cfg = loaded
	}

	var p *project.Project
	switch {
	case *demoPtr:
		e, err := generate.BouncingBall(cfg.FrameRate, cfg.TotalFrames)
		if err != nil {
			log.Fatalf("[-] Demo generation failed: %v", err)
		}
		p = e.Project()
		fmt.Printf("[*] Generated demo project: %d layers, %d frames @ %d fps\n",
			p.LayerCount(), p.TotalFrames, p.FrameRate)
	case *inPtr != "":
		loaded, err := document.Load(*inPtr)
		if err != nil {
			log.Fatalf("[-] Cannot load project: %v", err)
		}
		p = loaded
		fmt.Printf("[*] Loaded project: %s\n", *inPtr)
	default:
		fmt.Println("Nothing to do. Use -demo or -in <project.json>.")
		flag.Usage()
		os.Exit(1)
	}

	if *outPtr != "" {
		if err := document.Save(p, *outPtr); err != nil {
			log.Fatalf("[-] Cannot save project: %v", err)
		}
		fmt.Printf("[+] Project saved: %s\n", *outPtr)
	}

	if *infoPtr {
		printInfo(p)
	}

	if *scrubPtr >= 0 {
		if err := scrub(p, *scrubPtr, *onionPtr, cfg); err != nil {
			log.Fatalf("[-] Scrub failed: %v", err)
		}
	}

	if *renderPtr != "" {
		start, end, err := parseFrameRange(*framesPtr, p.TotalFrames)
		if err != nil {
			log.Fatalf("[-] Bad frame range: %v", err)
		}
		count := end - start + 1
		workers := system.Workers(*workersPtr, count)
		fmt.Printf("[*] Exporting frames %d..%d with %d workers...\n", start, end, workers)
		began := time.Now()
		if err := render.ExportFrames(p, *renderPtr, start, end, workers); err != nil {
			log.Fatalf("[-] Export failed: %v", err)
		}
		fmt.Printf("[+] %d frames written to %s\n", count, *renderPtr)
		if *statsPtr {
			fmt.Println(system.PerfReport(count, time.Since(began)))
		}
	}

	if *spritePtr != "" {
		start, end, err := parseFrameRange(*framesPtr, p.TotalFrames)
		if err != nil {
			log.Fatalf("[-] Bad frame range: %v", err)
		}
		sheet, err := render.SpriteSheet(p, start, end, cfg.Export.SpriteColumns, cfg.Export.SpriteScale)
		if err != nil {
			log.Fatalf("[-] Sprite sheet failed: %v", err)
		}
		if err := render.WritePNG(*spritePtr, sheet); err != nil {
			log.Fatalf("[-] Cannot write sprite sheet: %v", err)
		}
		fmt.Printf("[+] Sprite sheet written: %s\n", *spritePtr)
	}
}

func printInfo(p *project.Project) {
	fmt.Printf("Project: %s (%dx%d, %d frames @ %d fps)\n",
		p.Name, p.CanvasWidth, p.CanvasHeight, p.TotalFrames, p.FrameRate)
	for i, l := range p.Layers() {
		state := ""
		if !l.Visible {
			state += " hidden"
		}
		if l.Locked {
			state += " locked"
		}
		fmt.Printf("  layer %d: %s (opacity %.2f%s)\n", i, l.Name, l.Opacity, state)
		for _, o := range l.Objects() {
			keys := 0
			for _, prop := range o.AnimatedProperties() {
				keys += o.Track(prop).Len()
			}
			fmt.Printf("    %s [%s] keyframes=%d\n", o.Name, o.Geometry.Kind(), keys)
		}
	}
}

func scrub(p *project.Project, frame int, onionPath string, cfg config.Config) error {
	b := scene.NewBuilder(p)
	s, err := b.BuildFrame(frame)
	if err != nil {
		return err
	}
	fmt.Printf("Frame %d (%d objects):\n", frame, len(s.Objects))
	for _, of := range s.Objects {
		st := of.State
		fmt.Printf("  %s pos=(%.1f,%.1f) rot=%.3f scale=(%.2f,%.2f) stroke=%.1f\n",
			of.ObjectID, st.Position.X, st.Position.Y, anim.NormalizeAngle(st.Rotation),
			st.Scale.X, st.Scale.Y, st.StrokeWidth)
	}
	if onionPath == "" {
		return nil
	}
	ghosts, err := b.OnionSkins(frame, scene.OnionOptions{
		Enabled:      true,
		FramesBefore: cfg.Onion.FramesBefore,
		FramesAfter:  cfg.Onion.FramesAfter,
		BaseAlpha:    cfg.Onion.BaseAlpha,
	})
	if err != nil {
		return err
	}
	if err := render.WritePNG(onionPath, render.FrameWithOnion(s, ghosts)); err != nil {
		return err
	}
	fmt.Printf("[+] Onion-skin preview written: %s\n", onionPath)
	return nil
}

func parseFrameRange(spec string, totalFrames int) (int, int, error) {
	if spec == "" {
		return 0, totalFrames - 1, nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected start:end, got %q", spec)
	}
	var start, end int
	if _, err := fmt.Sscanf(parts[0], "%d", &start); err != nil {
		return 0, 0, fmt.Errorf("bad start %q", parts[0])
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &end); err != nil {
		return 0, 0, fmt.Errorf("bad end %q", parts[1])
	}
	if start < 0 || end >= totalFrames || start > end {
		return 0, 0, fmt.Errorf("range %d:%d outside [0,%d)", start, end, totalFrames)
	}
	return start, end, nil
}
