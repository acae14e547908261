package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life-board/model"
	"github.com/sheikhrachel/go-life-board/utils"
)

// initializeGame builds the simulation and lays out the configured pattern
func initializeGame(config utils.Config, logger *slog.Logger, observer model.Observer) (*model.Simulation, error) {
	sim, err := model.NewSimulation(config, model.WithLogger(logger), model.WithObserver(observer))
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] creating simulation")
	}
	if _, err = sim.Seed(config.Pattern, config.RandomDensity, config.Seed); err != nil {
		return nil, errors.Wrap(err, "[initializeGame] seeding grid")
	}
	return sim, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, sim *model.Simulation) {
	fmt.Printf("Features: Memory Pool: %v, Workers: %d, Delay: %v\n",
		config.UseMemoryPool, config.Workers, sim.Delay())
	fmt.Printf("Grid: %dx%d | Pattern: %s | Initial living cells: %d\n",
		sim.Rows(), sim.Cols(), config.Pattern, sim.AliveCount())
	fmt.Println("Press Ctrl+C to exit gracefully")
	fmt.Println()
	time.Sleep(2 * time.Second)
}

// displayGameStatus shows the current game status
func displayGameStatus(frame model.Frame, stats utils.Stats, cells int) {
	density := float64(frame.Alive) / float64(cells) * 100

	status := "Active"
	if frame.Alive == 0 {
		status = "Extinct"
	} else if frame.State != model.Running {
		status = frame.State.String()
	}

	fmt.Printf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		frame.Generation, frame.Alive, density, status)
	fmt.Printf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())
	fmt.Println()
}

// runTerminal plays the configured pattern until extinction, the generation
// limit, or Ctrl+C, redrawing after every generation
func runTerminal(ctx context.Context, config utils.Config, logger *slog.Logger) error {
	renderer := &model.TerminalRenderer{}
	cells := config.Rows * config.Cols

	var sim *model.Simulation
	sim, err := initializeGame(config, logger, func(frame model.Frame) {
		renderer.Clear()
		displayGameStatus(frame, sim.Stats(), cells)
		renderer.Display(frame)

		if config.MaxGenerations > 0 && frame.Generation >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			sim.Pause()
		}
	})
	if err != nil {
		return err
	}

	displayGameInfo(config, sim)
	if sim.AliveCount() == 0 {
		fmt.Println("Nothing alive to simulate")
		return nil
	}

	sim.Start(ctx)
	sim.Wait()

	if ctx.Err() != nil {
		fmt.Println("\n🛑 Shutting down gracefully...")
	}
	stats := sim.Stats()
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		sim.Generation(), time.Since(stats.StartTime).Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
	return nil
}
