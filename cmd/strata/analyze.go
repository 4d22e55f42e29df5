package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dusk-indust/strata/internal/config"
	"github.com/dusk-indust/strata/internal/orchestrator"
)

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	root := fs.String("root", ".", "path to the project to analyze")
	project := fs.String("project", "", "display name recorded with the run")
	cfgPath := fs.String("config", "", "path to a directory containing strata.yml (default: --root)")
	ext := fs.String("extension", "", "source file extension to scan (default .php)")
	maxFiles := fs.Int("max-files", 0, "cap on number of files scanned (0 = unbounded)")
	timeout := fs.Duration("timeout", 0, "metric computation timeout (default 60s)")
	out := fs.String("out", "./data", "directory to write graph_<run_id>.json and archived state")

	if help, err := parseFlagSet(fs, args); help || err != nil {
		return err
	}

	rootAbs, err := filepath.Abs(*root)
	if err != nil {
		return fmt.Errorf("resolving --root: %w", err)
	}

	cfgDir := *cfgPath
	if cfgDir == "" {
		cfgDir = rootAbs
	}
	cfg, err := config.Load(cfgDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	opts := orchestrator.Options{
		Root:        rootAbs,
		ProjectName: firstNonEmpty(*project, cfg.ProjectName, filepath.Base(rootAbs)),
		Extension:   firstNonEmpty(*ext, cfg.Extension),
		MaxFiles:    firstNonZero(*maxFiles, cfg.MaxFiles),
		Timeout:     firstNonZeroDuration(*timeout, cfg.Timeout.AsDuration()),
	}

	dataDir := firstNonEmpty(*out, cfg.OutputDir, "./data")
	repo, err := openRepository(dataDir)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	defer repo.Close()

	summary, err := orchestrator.Run(context.Background(), repo, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "run %s: %d files, %d classes, %d edges\n",
		summary.RunID, summary.Files, summary.Classes, summary.Edges)
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroDuration(vals ...time.Duration) time.Duration {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
