package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"github.com/plus3/wordfall/audio"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/debugui"
	debugui_ebiten "github.com/plus3/wordfall/debugui/ebiten"
	"github.com/plus3/wordfall/engine"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	catalogPath := flag.String("catalog", "", "Path to a JSON word list catalog. Defaults to the built-in catalog.")
	listID := flag.String("list", "algae-fungi-en", "Word list to select on startup.")
	category := flag.Int("category", 0, "Category (0 or 1) to score on startup.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug overlay.")
	mute := flag.Bool("mute", false, "Disable sound.")
	highScore := flag.Uint("high-score", 0, "High score to carry over from an earlier session.")
	flag.Parse()

	_ = godotenv.Load()
	logger := log.New(os.Stderr, "wordfall: ", log.LstdFlags)

	cfg, err := engine.ConfigFromEnv()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	catalog := content.DefaultCatalog()
	if *catalogPath != "" {
		if catalog, err = content.LoadCatalog(*catalogPath); err != nil {
			logger.Fatalf("Failed to load catalog: %v", err)
		}
	}
	logger.Printf("Loaded %d word lists", catalog.Len())

	e, err := engine.New(catalog, cfg,
		engine.WithLogger(logger),
		engine.WithMeasurer(engine.RuneMeasurer{CharWidth: debugGlyphWidth, Padding: 2 * itemPadding}),
	)
	if err != nil {
		logger.Fatalf("Failed to create engine: %v", err)
	}
	defer e.Close()

	e.RestoreHighScore(*highScore)
	if err := e.SelectList(*listID, *category); err != nil {
		logger.Printf("Could not select %q: %v", *listID, err)
	}

	player := audio.NewPlayer()
	if !*mute {
		player.InitOrWarn(logger)
		defer player.Attach(e)()
	}
	defer player.Close()

	game := NewGame(e)

	if *debug {
		overlay := debugui.NewOverlay(e, 120)
		game.imgui = debugui_ebiten.NewImguiBackend("wordfall (debug)", ScreenWidth, ScreenHeight, overlay)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("wordfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Printf("Game exited: %v", err)
	}
}
