package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dusk-indust/strata/internal/api"
	"github.com/dusk-indust/strata/internal/mcptools"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", ":8090", "HTTP listen address")
	mcpAddr := fs.String("mcp-addr", ":8091", "MCP listen address, used when --mcp is set")
	runMCP := fs.Bool("mcp", false, "also serve the MCP tool surface")
	ext := fs.String("extension", "", "source file extension to scan (default .php)")
	maxFiles := fs.Int("max-files", 0, "cap on number of files scanned per run (0 = unbounded)")
	timeout := fs.Duration("timeout", 0, "metric computation timeout per run (default 60s)")
	dataDir := fs.String("data-dir", "./data", "directory to write archived graph JSON")

	if help, err := parseFlagSet(fs, args); help || err != nil {
		return err
	}

	repo, err := openRepository(*dataDir)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	defer repo.Close()

	server := api.NewServer(repo, *ext, *maxFiles, *timeout)
	if err := server.Start(*addr); err != nil {
		return fmt.Errorf("starting HTTP server: %w", err)
	}
	fmt.Fprintf(os.Stdout, "strata: listening on %s\n", *addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *runMCP {
		svc := mcptools.NewService(repo, *ext, *maxFiles, *timeout)
		go func() {
			if err := mcptools.RunMCPServer(ctx, svc, *mcpAddr); err != nil {
				fmt.Fprintf(os.Stderr, "mcp server: %v\n", err)
			}
		}()
		fmt.Fprintf(os.Stdout, "strata: mcp tools listening on %s\n", *mcpAddr)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return server.Stop(shutdownCtx)
}
