package commands

import (
	"fmt"
)

// LinksOptions extends Options for the links listing.
type LinksOptions struct {
	Options

	// Discover switches from the ledger to the reverse filesystem scan.
	Discover bool
}

// Links prints tracked entries, or discovered ones with Discover set.
// Discovery results are diagnostics; they are never written back into
// the ledger.
func Links(opts LinksOptions) error {
	opts.normalize()

	runner, _ := opts.newRunner()
	led := opts.newLedger(runner)

	entries, err := led.ListTracked()
	if opts.Discover {
		entries, err = led.DiscoverRepoLinks(opts.Paths.RepoRoot(), opts.Paths.ScanRoots())
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Fprintf(opts.Out, "%s -> %s\n", entry.Source, entry.Destination)
	}
	return nil
}
