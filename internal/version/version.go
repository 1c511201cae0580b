package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/dotstrap/dotstrap/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/dotstrap/dotstrap/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/dotstrap/dotstrap/internal/version.Date={{.Date}}
)
