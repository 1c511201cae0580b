package commands

import (
	"fmt"

	"github.com/dotstrap/dotstrap/pkg/linker"
)

// Status reports which configured links would change, plus the reverse
// discovery of repo-owned symlinks on disk. It never mutates state and
// does not take the lock.
func Status(opts Options) error {
	opts.normalize()

	// A neutral runner: Status never previews or executes anything,
	// the linker only answers WouldChange here.
	runner, _ := opts.newRunner()
	led := opts.newLedger(runner)
	lnk := linker.New(opts.FS, runner, led)

	for _, spec := range opts.Config.Links {
		source := opts.Paths.ResolveSource(spec.Source)
		target, err := opts.Paths.ResolveTarget(spec.Target)
		if err != nil {
			return err
		}

		changed, err := lnk.WouldChange(source, target)
		if err != nil {
			return err
		}
		state := "ok"
		if changed {
			state = "needs update"
		}
		fmt.Fprintf(opts.Out, "%-13s %s -> %s\n", state+":", target, source)
	}

	discovered, err := led.DiscoverRepoLinks(opts.Paths.RepoRoot(), opts.Paths.ScanRoots())
	if err != nil {
		return err
	}
	if len(discovered) > 0 {
		fmt.Fprintf(opts.Out, "\ndiscovered links into %s:\n", opts.Paths.RepoRoot())
		for _, entry := range discovered {
			fmt.Fprintf(opts.Out, "  %s -> %s\n", entry.Destination, entry.Source)
		}
	}
	return nil
}
