package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pavanmanishd/nstd/sharedptr"
)

var (
	sharedOwners int
	sharedSize   int
)

func newSharedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shared",
		Short: "Share one pointer among many owners and release them all",
		Long: `The shared command allocates one shared value of --size bytes, shares
it --owners times, frees every handle and checks that the allocation was
released exactly once.

Example:
  nstdbench shared --owners 64 --size 256 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShared(cmd)
		},
	}
	cmd.Flags().IntVar(&sharedOwners, "owners", 8, "Number of additional owners")
	cmd.Flags().IntVar(&sharedSize, "size", 64, "Payload size in bytes")
	return cmd
}

type sharedReport struct {
	Alloc     report `json:"alloc"`
	Owners    int    `json:"owners"`
	PeakCount int    `json:"peak_count"`
	Live      int    `json:"live"`
}

func runShared(cmd *cobra.Command) error {
	if sharedOwners < 0 || sharedSize <= 0 {
		return fmt.Errorf("owners must be non-negative and size positive")
	}
	b, err := openBackend(backendName, chunkSize)
	if err != nil {
		return err
	}
	defer b.close()

	s := sharedptr.NewZeroed(b.tracker, sharedSize)
	handles := make([]sharedptr.SharedPtr, 0, sharedOwners+1)
	handles = append(handles, s)
	for i := 0; i < sharedOwners; i++ {
		handles = append(handles, s.Share())
	}
	r := sharedReport{Owners: sharedOwners, PeakCount: s.Owners()}
	for i := range handles {
		handles[i].Free()
	}
	r.Live = b.tracker.Live()
	r.Alloc = b.report()

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), r)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:    %s\n", r.Alloc.Backend)
	fmt.Fprintf(w, "Peak count: %d\n", r.PeakCount)
	fmt.Fprintf(w, "Live:       %d\n", r.Live)
	printTracker(w, r.Alloc)
	return nil
}

// printTracker writes the allocator counters shared by all reports.
func printTracker(w io.Writer, r report) {
	m := r.Tracker
	fmt.Fprintf(w, "Allocator:  %d allocs, %d reallocs, %d deallocs, peak %d bytes\n",
		m.Allocs, m.Reallocs, m.Deallocs, m.PeakBytes)
	if r.Heap != nil {
		fmt.Fprintf(w, "Heap:       %d chunks, %.2f%% utilization\n",
			r.Heap.NumChunks, r.Heap.Utilization*100)
	}
}
