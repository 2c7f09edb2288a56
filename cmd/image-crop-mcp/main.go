package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ironsheep/image-crop-mcp/internal/config"
	"github.com/ironsheep/image-crop-mcp/internal/logging"
	"github.com/ironsheep/image-crop-mcp/internal/metrics"
	"github.com/ironsheep/image-crop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-crop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		// stdout is reserved for the protocol
		log.SetOutput(os.Stderr)
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	logger.Info("starting image-crop-mcp",
		"version", Version,
		"build_time", BuildTime,
		"commit", GitCommit,
		"workers", cfg.Workers,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := metrics.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	if Version != "dev" {
		server.Version = Version
	}
	srv := server.New(cfg, logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		logger.Info("stdin closed, shutting down")
	case <-ctx.Done():
		logger.Info("received signal, shutting down")
	}
}

func printHelp() {
	fmt.Println("image-crop-mcp - MCP server for batch image cropping")
	fmt.Println()
	fmt.Println("Usage: image-crop-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Println("  CROP_MCP_LOG_LEVEL=info          debug, info, warn or error")
	fmt.Println("  CROP_MCP_LOG_FORMAT=text         text or json (written to stderr)")
	fmt.Println("  CROP_MCP_PREVIEW_MAX_SIZE=600    Default preview bound in pixels")
	fmt.Println("  CROP_MCP_JPEG_QUALITY=95         JPEG output quality, 1-100")
	fmt.Println("  CROP_MCP_WEBP_LOSSLESS=true      Lossless WebP output")
	fmt.Println("  CROP_MCP_WEBP_QUALITY=90         WebP quality when lossy, 0-100")
	fmt.Println("  CROP_MCP_WORKERS=<cpus>          Concurrent image jobs, 1-256")
	fmt.Println("  CROP_MCP_METRICS_ADDR=           Serve Prometheus /metrics, e.g. :9090")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client.")
}
