package commands

// Message constants
const (
	MsgRootShort = "An idempotent dotfiles symlink deployer"
	MsgRootLong  = `dotstrap deploys your configuration files by symlinking them from a
managed repository into your home directory. Runs are idempotent, can
be previewed with --dry-run, and are serialized by a session lock so
two invocations never race.`

	MsgUpShort   = "Deploy configured symlinks"
	MsgUpLong    = `The 'up' command deploys every link declared in the repository
configuration. Correct links are left untouched, wrong ones are
replaced, and pre-existing files are moved aside to a timestamped
backup before linking.`
	MsgUpExample = `  # Deploy everything
  dotstrap up

  # Preview first
  dotstrap up --dry-run`

	MsgDownShort = "Remove deployed symlinks"
	MsgDownLong  = `The 'down' command removes the symlinks recorded in the tracking
ledger, as long as they still point into the repository, and untracks
them. Paths you have since replaced with real files are left alone.`

	MsgStatusShort = "Show which links would change"
	MsgStatusLong  = `The 'status' command reports, without touching anything, which
configured links already match and which would change on the next
'up'. It also lists symlinks on disk that resolve into the repository,
discovered independently of the ledger.`

	MsgLinksShort   = "List tracked symlinks"
	MsgLinksLong    = `The 'links' command prints the entries of the tracking ledger.
With --discover it instead scans the home directory, the config
directory and ~/.local/bin for symlinks resolving into the repository.`
	MsgLinksExample = `  # What the ledger says dotstrap created
  dotstrap links

  # What actually points into the repo right now
  dotstrap links --discover`

	MsgVersionShort = "Print version information"
)
