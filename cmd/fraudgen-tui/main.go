package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dd0wney/cluso-fraudgen/pkg/browse"
	"github.com/dd0wney/cluso-fraudgen/pkg/config"
)

func main() {
	dataDir := config.DefaultOutputDir
	if len(os.Args) > 1 {
		dataDir = os.Args[1]
	}

	data, err := browse.Load(dataDir)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	p := tea.NewProgram(browse.New(data), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
