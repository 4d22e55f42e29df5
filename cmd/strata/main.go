// Command strata runs the structural-intelligence engine: it scans a PHP
// source tree, builds a typed dependency graph, computes a metric matrix
// over its structural projection, and persists the result — as a one-shot
// CLI run, as an HTTP service, or as an MCP tool server.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// version is set by the linker at build time.
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:])
	case "serve":
		return runServe(args[1:])
	case "export":
		return runExport(args[1:])
	case "-version", "--version", "version":
		fmt.Println(version)
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command %q (want analyze, serve, or export)", args[0])
	}
}

func printUsage() {
	fmt.Println(`strata — structural intelligence engine for PHP-family source trees

Usage:
  strata analyze --root <path> --project <name> [flags]
  strata serve --addr :8090 [--mcp]
  strata export --graph graph_<run_id>.json --format mermaid|dot

Run "strata <command> -h" for flags specific to a command.`)
}

// parseFlagSet parses fs against args, treating flag.ErrHelp as a
// non-error early exit.
func parseFlagSet(fs *flag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
