package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docchunk/internal/chunker"
	"docchunk/internal/tokenizer"
)

type estimateOutput struct {
	Characters int            `json:"characters"`
	Estimates  map[string]int `json:"estimates"`
	Exact      *int           `json:"exact,omitempty"`
	Encoding   string         `json:"encoding,omitempty"`
}

func newEstimateCommand() *cobra.Command {
	var exact bool
	var encoding string

	cmd := &cobra.Command{
		Use:   "estimate [file]",
		Short: "Estimate token counts for a file or piped text",
		Long:  "Reads a file or piped stdin and reports token estimates for each heuristic. With --exact the text is also tokenized with a tiktoken vocabulary.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			if err := requireNonEmpty(input); err != nil {
				return err
			}

			out := estimateOutput{
				Characters: len(input),
				Estimates: map[string]int{
					chunker.Simple.String():    chunker.EstimateTokenCount(input, chunker.Simple),
					chunker.WordBased.String(): chunker.EstimateTokenCount(input, chunker.WordBased),
					chunker.Advanced.String():  chunker.EstimateTokenCount(input, chunker.Advanced),
				},
			}

			if exact {
				counter, err := tokenizer.NewCounter(encoding)
				if err != nil {
					return fmt.Errorf("tokenizer unavailable: %w", err)
				}
				count, err := counter.Count(input)
				if err != nil {
					return fmt.Errorf("exact count failed: %w", err)
				}
				out.Exact = &count
				out.Encoding = counter.Encoding()
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			label := color.New(color.FgCyan)
			label.Print("characters:  ")
			fmt.Println(out.Characters)
			for _, method := range []chunker.TokenMethod{chunker.Simple, chunker.WordBased, chunker.Advanced} {
				label.Printf("%-12s ", method.String()+":")
				fmt.Println(out.Estimates[method.String()])
			}
			if out.Exact != nil {
				label.Printf("%-12s ", "exact:")
				fmt.Printf("%d (%s)\n", *out.Exact, out.Encoding)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "Tokenize with a tiktoken vocabulary as well")
	cmd.Flags().StringVar(&encoding, "encoding", "", "Model or encoding name for --exact (default cl100k_base)")

	return cmd
}
