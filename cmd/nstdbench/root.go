package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/pavanmanishd/nstd/alloc"
)

var (
	// Global flags
	backendName string
	chunkSize   int
	verbose     bool
	jsonOut     bool
)

var json = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
	IndentionStep:   2,
}.Froze()

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nstdbench",
		Short: "Exercise nstd containers against an allocator backend",
		Long: `nstdbench runs vectors, strings and shared pointers on one of the
allocator backends (go, malloc, heap, mmap) through an allocation tracker
and reports the resulting counters.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				alloc.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
					&slog.HandlerOptions{Level: slog.LevelDebug})))
			} else {
				alloc.SetLogger(nil)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&backendName, "backend", "b", "go", "Allocator backend: go, malloc, heap or mmap")
	cmd.PersistentFlags().IntVar(&chunkSize, "chunk-size", alloc.DefaultChunkSize, "Chunk size for the heap and mmap backends")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log allocator activity to stderr")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	cmd.AddCommand(newVecCmd(), newStringCmd(), newSharedCmd())
	return cmd
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
