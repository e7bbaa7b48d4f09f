package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docchunk/internal/chunker"
)

type chunkOutput struct {
	Chunks          []chunker.TextChunk `json:"chunks"`
	Count           int                 `json:"count"`
	TotalCharacters int                 `json:"total_characters"`
}

func newChunkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chunk [file]",
		Short: "Split a file or piped text into overlapping chunks",
		Long:  "Reads a file or piped stdin and splits it into overlapping, size-bounded chunks. Word boundaries are preserved unless disabled.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}
			if err := requireNonEmpty(input); err != nil {
				return err
			}

			opts, err := chunkOptionsFromFlags()
			if err != nil {
				return err
			}

			chunks, err := chunker.ChunkText(input, opts)
			if err != nil {
				return fmt.Errorf("chunking failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(chunkOutput{
					Chunks:          chunks,
					Count:           len(chunks),
					TotalCharacters: len(input),
				})
			}

			header := color.New(color.FgCyan, color.Bold)
			dim := color.New(color.Faint)
			for i, c := range chunks {
				header.Printf("--- chunk %d/%d ", i+1, len(chunks))
				if opts.IncludeMetadata {
					dim.Printf("[%d:%d, ~%d tokens]", c.StartIndex, c.EndIndex, c.EstimatedTokens)
				} else {
					dim.Printf("[%d:%d]", c.StartIndex, c.EndIndex)
				}
				fmt.Println()
				fmt.Println(c.Content)
			}
			dim.Printf("%d chunks from %d bytes\n", len(chunks), len(input))
			return nil
		},
	}
}
