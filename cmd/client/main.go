package main

import (
	"flag"
	"fmt"
	"os"

	clientapi "taskdeck/internal/client/api"
	"taskdeck/internal/client/config"
	"taskdeck/internal/client/session"
	"taskdeck/internal/client/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	defaultConfig, _ := config.DefaultPath()
	configPath := flag.String("config", defaultConfig, "path to the client config file")
	serverURL := flag.String("server", "", "server base URL (overrides the config file)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	sess, err := session.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session store: %v\n", err)
		os.Exit(1)
	}

	client := clientapi.New(cfg.ServerURL)

	p := tea.NewProgram(ui.New(client, sess))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running client: %v\n", err)
		os.Exit(1)
	}
}
