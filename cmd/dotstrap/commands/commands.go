package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotstrap/dotstrap/internal/version"
	core "github.com/dotstrap/dotstrap/pkg/commands"
)

func newUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			return core.Up(opts)
		},
	}
}

func newDownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: MsgDownShort,
		Long:  MsgDownLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			return core.Down(opts)
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			return core.Status(opts)
		},
	}
}

func newLinksCmd() *cobra.Command {
	var discover bool

	cmd := &cobra.Command{
		Use:     "links",
		Short:   MsgLinksShort,
		Long:    MsgLinksLong,
		Example: MsgLinksExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions()
			if err != nil {
				return err
			}
			opts.Out = cmd.OutOrStdout()
			return core.Links(core.LinksOptions{Options: opts, Discover: discover})
		},
	}
	cmd.Flags().BoolVar(&discover, "discover", false, "Scan the filesystem instead of reading the ledger")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dotstrap version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
