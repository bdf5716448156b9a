// Package main is the entry point for the usagewatch desktop widget.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/p-reiter/usagewatch/internal/config"
	"github.com/p-reiter/usagewatch/internal/gui"
	"github.com/p-reiter/usagewatch/internal/services"
	"github.com/p-reiter/usagewatch/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	noNotify := flag.Bool("no-notify", false, "disable desktop spike notifications")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if err := run(*noNotify); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(noNotify bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	svcManager, err := services.NewManager(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer svcManager.Close()

	if noNotify {
		svcManager.SetNotifications(false)
	}

	window := gui.New(svcManager, cfg)

	// Forward cycle results to the window off the Fyne event loop; Present
	// marshals its own UI updates.
	ch, _ := svcManager.Subscribe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for {
			select {
			case event := <-ch:
				if cycle, ok := event.(services.CycleEvent); ok {
					window.Present(cycle.Result)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	svcManager.Start(ctx)

	window.ShowAndRun()
	return nil
}
