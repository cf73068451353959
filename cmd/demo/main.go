package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"weekender/demo/client"
	"weekender/demo/tui"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	serverURL := flag.String("url", client.GetEnvOrDefault("WEEKENDER_URL", "http://localhost:8080"), "weekender server URL")
	flag.Parse()

	m := tui.NewModel(*serverURL)
	program := tea.NewProgram(m)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
