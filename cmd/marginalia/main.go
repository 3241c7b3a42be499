package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/idavey/marginalia/internal/importer"
	"github.com/idavey/marginalia/internal/kv"
	"github.com/idavey/marginalia/internal/llm"
	"github.com/idavey/marginalia/internal/trigger"
	"github.com/idavey/marginalia/internal/tui"
)

func main() {
	_ = godotenv.Load()

	statePath := flag.String("state", "marginalia.json", "path to the state file (or directory when -store badger)")
	storeKind := flag.String("store", "file", "persistence backend: file or badger")
	importPath := flag.String("import", "", "seed the editor from a .pdf or plain-text file")
	strategy := flag.String("trigger", string(trigger.StrategyDoubleTerminator), "trigger strategy: double-terminator or count-increase")
	provider := flag.String("llm-provider", "", "generation provider: ollama (default) or openai")
	llmModel := flag.String("llm-model", "", "override the provider's default model")
	llmEndpoint := flag.String("llm-endpoint", "", "custom provider endpoint (eg. http://localhost:11434)")
	logPath := flag.String("log", "marginalia.log", "diagnostics log file")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	flag.Parse()

	logger, logFile, err := setupLogger(*logPath)
	if err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	store, err := openStore(*storeKind, *statePath)
	if err != nil {
		fmt.Println("failed to open state store:", err)
		os.Exit(1)
	}
	defer store.Close()

	var generator llm.Generator
	generator, err = llm.NewFromEnv(llm.Config{
		Provider: *provider,
		Model:    *llmModel,
		Endpoint: *llmEndpoint,
	})
	if err != nil {
		fmt.Println("LLM disabled:", err)
		generator = nil
	}

	var seed string
	if *importPath != "" {
		seed, err = importer.Read(*importPath)
		if err != nil {
			fmt.Println("failed to import document:", err)
			os.Exit(1)
		}
	}

	opts := []tea.ProgramOption{}
	if !*noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			KV:        store,
			Generator: generator,
			Strategy:  trigger.Strategy(*strategy),
			Logger:    logger,
			SeedText:  seed,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// setupLogger writes diagnostics to a file; the terminal belongs to the UI.
func setupLogger(path string) (zerolog.Logger, *os.File, error) {
	if path == "" {
		return zerolog.Nop(), nil, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, file, nil
}

func openStore(kind, path string) (kv.Store, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if kind == "badger" {
		return kv.OpenBadger(abs)
	}
	return kv.OpenFile(abs)
}
