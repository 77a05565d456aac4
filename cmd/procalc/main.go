package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akashbangaru2005/pro-math-calculator/internal/calc"
	"github.com/akashbangaru2005/pro-math-calculator/internal/config"
	"github.com/akashbangaru2005/pro-math-calculator/internal/engine"
	"github.com/akashbangaru2005/pro-math-calculator/internal/remote"
	"github.com/akashbangaru2005/pro-math-calculator/internal/sound"
	"github.com/akashbangaru2005/pro-math-calculator/internal/store"
	"github.com/akashbangaru2005/pro-math-calculator/internal/ui"
)

const banner = `
 ┌─┐┬─┐┌─┐┌─┐┌─┐┬  ┌─┐
 ├─┘├┬┘│ ││  ├─┤│  │
 ┴  ┴└─└─┘└─┘┴ ┴┴─┘└─┘`

func main() {
	configPath := flag.String("config", "procalc.yaml", "path to YAML config")
	dbPath := flag.String("db", "", "history database (overrides config)")
	remoteURL := flag.String("remote", "", "record history on a procalc-server at this URL")
	quiet := flag.Bool("quiet", false, "disable sounds")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *remoteURL != "" {
		cfg.RemoteHistory = *remoteURL
	}
	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("data dir: %v", err)
	}

	// bubbletea owns the terminal; keep log output out of it
	if f, err := os.OpenFile(filepath.Join(cfg.DataDir, "procalc.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	asciiArt := banner
	if b, err := os.ReadFile("assets/ascii.txt"); err == nil {
		asciiArt = string(b)
	}

	var history store.Recorder
	if cfg.RemoteHistory != "" {
		rc, err := remote.New(cfg.RemoteHistory)
		if err != nil {
			log.Fatalf("remote history: %v", err)
		}
		history = rc
	} else {
		st, err := store.NewStore(cfg.DBPath)
		if err != nil {
			log.Fatalf("store init: %v", err)
		}
		defer st.Close()
		history = st
	}

	sm, err := sound.New(44100)
	if err != nil {
		log.Printf("sound disabled: %v", err)
		sm = nil
	} else if !cfg.Sound || *quiet {
		sm.SetDisabled(true)
	}

	msgs := make(chan string, 8)
	e := engine.NewEngine(calc.New(cfg.Limits()), history, cfg.HistoryLimit, cfg.DataDir, msgs)
	m := ui.NewModel(e, asciiArt, sm)

	prog := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		log.Fatalf("program failed: %v", err)
	}
}
