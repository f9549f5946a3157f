package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/animfold/anim"
	"github.com/milk9111/animfold/animset"
	"github.com/milk9111/animfold/common"
	"github.com/milk9111/animfold/render"
)

func main() {
	setName := flag.String("set", "hero", "animation set to view")
	configName := flag.String("config", "engine", "engine config file")
	dir := flag.String("dir", animset.DiskDir, "directory with set overrides")
	assetsDir := flag.String("assets", "assets", "directory with sprite sheets")
	watch := flag.Bool("watch", false, "hot reload sets and scripts on change")
	debug := flag.Bool("debug", false, "debug logging")
	scale := flag.Float64("scale", 4, "sprite scale")
	flag.Parse()

	animset.DiskDir = *dir

	cfg, cfgSpec, err := animset.LoadConfig(*configName)
	if err != nil {
		log.Fatal(err)
	}
	setupLogging(cfgSpec.LogLevel, *debug)

	loader := animset.NewLoader()
	tex := render.NewTextures(render.FileLoader(*assetsDir))
	lib := anim.NewLibrary(loader, loader, tex)
	eng := anim.NewEngine(lib, cfg)

	v, err := newViewer(eng, loader, tex, anim.SetID(*setName), *scale)
	if err != nil {
		log.Fatal(err)
	}

	if *watch {
		w, err := animset.NewWatcher(watchDirs(*dir)...)
		if err != nil {
			log.Printf("spsa: hot reload disabled: %v", err)
		} else {
			defer w.Close()
			v.watcher = w
		}
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle("spsa: " + *setName)
	ebiten.SetTPS(int(common.FixedHz))
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(level string, debug bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if debug {
		lvl = slog.LevelDebug
	}
	anim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func watchDirs(dir string) []string {
	var out []string
	for _, d := range []string{dir, filepath.Join(dir, "scripts")} {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
