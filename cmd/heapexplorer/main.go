package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 && (args[0] == "--help" || args[0] == "-h") {
		printUsage()
		os.Exit(0)
	}
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		fmt.Printf("heapexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	tracePath := ""
	if len(args) > 0 {
		tracePath = args[0]
	}

	m, err := newModel(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`heapexplorer - step through an allocator workload visually

Usage:
  heapexplorer [trace-file]

With no trace file the built-in exercise workload is loaded.

Keys:
  right/space/n  apply the next operation
  left/p         undo the last operation (replays from the start)
  r              reset to the initial empty heap
  e              run to the end
  q              quit`)
}
