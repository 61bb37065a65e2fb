// cmd/askdb/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/askdb/internal/assistant"
	"github.com/nhath/askdb/internal/config"
	"github.com/nhath/askdb/internal/saved"
	"github.com/nhath/askdb/internal/storage"
	"github.com/nhath/askdb/internal/ui"
)

func main() {
	// Parse flags
	debug := flag.Bool("debug", false, "Enable debug logging to debug.log")
	server := flag.String("server", "", "Assistant service URL (overrides server_url)")
	ephemeral := flag.Bool("ephemeral", false, "Keep saved queries in memory only")
	token := flag.String("token", "", "Store a bearer token for the assistant service (encrypted in the config)")
	flag.Parse()

	if *debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Printf("fatal: could not open debug log: %v", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *token != "" {
		if err := cfg.SetAPIToken(*token); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to store token: %v\n", err)
			os.Exit(1)
		}
	}
	if *server != "" {
		cfg.ServerURL = *server
	}

	ui.InitStyles(cfg.Theme)

	// Saved queries live in the local key-value store
	var kv storage.KV
	if *ephemeral {
		kv = storage.NewMemory()
	} else {
		db, err := storage.Open(cfg.StoragePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open storage: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		kv = db
	}

	store := saved.NewStore(kv)
	if err := store.Load(); err != nil {
		// Start with an empty list; the next save overwrites the bad value
		log.Printf("saved queries: %v", err)
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	client := assistant.NewClient(cfg.ServerURL, assistant.WithToken(cfg.APIToken))
	log.Printf("askdb: server %s, mode %s", client.BaseURL(), cfg.DefaultMode)

	model := ui.NewModel(cfg, client, store)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
