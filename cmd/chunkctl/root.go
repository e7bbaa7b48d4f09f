package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docchunk/internal/chunker"
)

var (
	jsonOutput     bool
	noColor        bool
	chunkSize      int
	overlap        float64
	sizeUnit       string
	tokenMethod    string
	preserveWords  bool
	boundaryWindow int
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chunkctl",
		Short: "Split documents into overlapping chunks from the terminal",
		Long: `chunkctl splits text into overlapping, size-bounded chunks and
estimates token counts. It reads a file argument or piped stdin and can
ingest files into the local document index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.PersistentFlags().IntVar(&chunkSize, "chunk-size", chunker.DefaultChunkSize, "Target chunk size")
	rootCmd.PersistentFlags().Float64Var(&overlap, "overlap", chunker.DefaultOverlapPercentage, "Overlap between consecutive chunks, 0 to 1 exclusive")
	rootCmd.PersistentFlags().StringVar(&sizeUnit, "unit", "characters", "Size unit: characters | tokens")
	rootCmd.PersistentFlags().StringVar(&tokenMethod, "method", "simple", "Token estimation method: simple | word_based | advanced")
	rootCmd.PersistentFlags().BoolVar(&preserveWords, "preserve-boundaries", true, "Avoid splitting words across chunks")
	rootCmd.PersistentFlags().IntVar(&boundaryWindow, "boundary-window", chunker.DefaultBoundaryWindow, "How far to search for a word boundary")

	rootCmd.AddCommand(newChunkCommand())
	rootCmd.AddCommand(newEstimateCommand())
	rootCmd.AddCommand(newIngestCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// chunkOptionsFromFlags builds engine options from the persistent flags.
func chunkOptionsFromFlags() (chunker.Options, error) {
	opts := chunker.DefaultOptions()
	opts.ChunkSize = chunkSize
	opts.OverlapPercentage = overlap
	opts.PreserveWordBoundaries = preserveWords
	opts.BoundaryWindow = boundaryWindow

	switch sizeUnit {
	case "characters":
		opts.SizeUnit = chunker.Characters
	case "tokens":
		opts.SizeUnit = chunker.Tokens
	default:
		return opts, fmt.Errorf("unknown size unit %q", sizeUnit)
	}

	switch tokenMethod {
	case "simple":
		opts.TokenMethod = chunker.Simple
	case "word_based":
		opts.TokenMethod = chunker.WordBased
	case "advanced":
		opts.TokenMethod = chunker.Advanced
	default:
		return opts, fmt.Errorf("unknown token method %q", tokenMethod)
	}

	return opts, nil
}

// readInput reads the first argument as a file, or stdin when no
// argument (or "-") is given.
func readInput(args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("could not read file %s: %w", args[0], err)
		}
		return string(data), nil
	}

	// Check if stdin has data
	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no input provided: pass a file path or pipe content to stdin\n\nExample: cat notes.md | chunkctl chunk")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("could not read from stdin: %w", err)
	}
	return string(data), nil
}

func requireNonEmpty(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input is empty: provide text to process")
	}
	return nil
}
