package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/nstd/vec"
)

var (
	vecStride int
	vecCount  int
)

func newVecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vec",
		Short: "Push elements into a vector and report its growth",
		Long: `The vec command pushes --count elements of --stride bytes into an
empty vector, then pops them all back.

Example:
  nstdbench vec --stride 16 --count 100000
  nstdbench vec --backend heap --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVec(cmd)
		},
	}
	cmd.Flags().IntVar(&vecStride, "stride", 8, "Element size in bytes")
	cmd.Flags().IntVar(&vecCount, "count", 1000, "Number of elements to push")
	return cmd
}

type vecReport struct {
	Alloc     report `json:"alloc"`
	Stride    int    `json:"stride"`
	Count     int    `json:"count"`
	Growths   int    `json:"growths"`
	FinalCap  int    `json:"final_cap"`
	Corrupted int    `json:"corrupted"`
}

func runVec(cmd *cobra.Command) error {
	if vecStride <= 0 || vecCount < 0 {
		return fmt.Errorf("stride must be positive and count non-negative")
	}
	b, err := openBackend(backendName, chunkSize)
	if err != nil {
		return err
	}
	defer b.close()

	v := vec.New(b.tracker, vecStride)
	elem := make([]byte, vecStride)
	growths, last := 0, v.Cap()
	for i := 0; i < vecCount; i++ {
		elem[0] = byte(i)
		if err := v.PushBytes(elem); err != nil {
			v.Free()
			return fmt.Errorf("push %d: %w", i, err)
		}
		if v.Cap() != last {
			growths++
			last = v.Cap()
		}
	}

	r := vecReport{Stride: vecStride, Count: vecCount, Growths: growths, FinalCap: v.Cap()}
	for i := vecCount - 1; i >= 0; i-- {
		if p := v.Pop(); p == nil || *(*byte)(p) != byte(i) {
			r.Corrupted++
		}
	}
	v.Free()
	r.Alloc = b.report()

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), r)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:    %s\n", r.Alloc.Backend)
	fmt.Fprintf(w, "Pushed:     %d x %d bytes\n", r.Count, r.Stride)
	fmt.Fprintf(w, "Growths:    %d (final capacity %d)\n", r.Growths, r.FinalCap)
	fmt.Fprintf(w, "Corrupted:  %d\n", r.Corrupted)
	printTracker(w, r.Alloc)
	return nil
}
