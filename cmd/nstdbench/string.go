package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/nstd/strbuf"
)

var stringText string

func newStringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "string",
		Short: "Build a UTF-8 string rune by rune",
		Long: `The string command pushes every rune of --text into an empty string,
reports its byte and character counts, then pops it back rune by rune.

Example:
  nstdbench string --text "Hello, 🌎!"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runString(cmd)
		},
	}
	cmd.Flags().StringVar(&stringText, "text", "Hello, 🌎!", "Text to build")
	return cmd
}

type stringReport struct {
	Alloc    report `json:"alloc"`
	Text     string `json:"text"`
	Bytes    int    `json:"bytes"`
	Chars    int    `json:"chars"`
	Reversed string `json:"reversed"`
}

func runString(cmd *cobra.Command) error {
	b, err := openBackend(backendName, chunkSize)
	if err != nil {
		return err
	}
	defer b.close()

	s := strbuf.NewString(b.tracker)
	defer s.Free()
	for _, r := range stringText {
		if err := s.Push(r); err != nil {
			return fmt.Errorf("push %q: %w", r, err)
		}
	}
	r := stringReport{Text: s.String(), Bytes: s.ByteLen(), Chars: s.Len()}

	rev := strbuf.NewString(b.tracker)
	defer rev.Free()
	for {
		ch, ok := s.Pop()
		if !ok {
			break
		}
		if err := rev.Push(ch); err != nil {
			return err
		}
	}
	r.Reversed = rev.String()
	r.Alloc = b.report()

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), r)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:  %s\n", r.Alloc.Backend)
	fmt.Fprintf(w, "Text:     %s\n", r.Text)
	fmt.Fprintf(w, "Bytes:    %d\n", r.Bytes)
	fmt.Fprintf(w, "Chars:    %d\n", r.Chars)
	fmt.Fprintf(w, "Reversed: %s\n", r.Reversed)
	printTracker(w, r.Alloc)
	return nil
}
