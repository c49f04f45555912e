package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ironsheep/reef-annotator-mcp/internal/config"
	"github.com/ironsheep/reef-annotator-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("reef-annotator-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("reef-annotator-mcp - MCP server for coral reef blob annotation")
			fmt.Println()
			fmt.Println("Usage: reef-annotator-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Printf("  %s=debug|info|warn|error\n", config.EnvLogLevel)
			fmt.Printf("  %s=N              batch blob workers\n", config.EnvWorkers)
			fmt.Printf("  %s=0.2       mask import area fraction\n", config.EnvAreaFraction)
			fmt.Printf("  %s=30         smallest piece kept by a cut\n", config.EnvCutMinArea)
			fmt.Printf("  %s=40       split seed disk radius\n", config.EnvMarkerRadius)
			fmt.Printf("  %s=0.95     closed curve fill rejection\n", config.EnvMaxCurveFill)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	cfg, cfgErr := config.Load()

	// stdout is the MCP protocol channel.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	logger.Debug("starting",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("commit", GitCommit),
		slog.Int("workers", cfg.Workers))
	if cfgErr != nil {
		logger.Warn("configuration adjusted", slog.String("error", cfgErr.Error()))
	}

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
