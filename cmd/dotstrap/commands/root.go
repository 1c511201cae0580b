package commands

import (
	"os"

	"github.com/spf13/cobra"

	core "github.com/dotstrap/dotstrap/pkg/commands"
	"github.com/dotstrap/dotstrap/pkg/config"
	"github.com/dotstrap/dotstrap/pkg/logging"
	"github.com/dotstrap/dotstrap/pkg/paths"
)

var (
	verbosity int
	dryRun    bool
	repoRoot  string
	logFile   string
)

// NewRootCmd builds the dotstrap command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dotstrap",
		Short:         MsgRootShort,
		Long:          MsgRootLong,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Preview changes without executing them")
	rootCmd.PersistentFlags().StringVar(&repoRoot, "repo", "", "Managed repository root (default $DOTSTRAP_REPO or ~/dotfiles)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path ('none' disables file logging)")

	rootCmd.AddCommand(newUpCmd())
	rootCmd.AddCommand(newDownCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLinksCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// buildOptions resolves paths and layered configuration, applies flag
// overrides and initializes logging for the invocation.
func buildOptions() (core.Options, error) {
	p, err := paths.New(repoRoot)
	if err != nil {
		return core.Options{}, err
	}

	cfg, err := config.Load(p.RepoRoot())
	if err != nil {
		return core.Options{}, err
	}

	// A repo_root set only in the config file moves the repository.
	if repoRoot == "" && os.Getenv(paths.EnvRepoRoot) == "" && cfg.RepoRoot != "" && cfg.RepoRoot != p.RepoRoot() {
		p, err = paths.New(cfg.RepoRoot)
		if err != nil {
			return core.Options{}, err
		}
	}

	if dryRun {
		cfg.DryRun = true
	}
	if verbosity > cfg.Verbose {
		cfg.Verbose = verbosity
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}

	logging.SetupLogger(cfg.Verbose, cfg.LogFile)

	return core.Options{Config: cfg, Paths: p}, nil
}
