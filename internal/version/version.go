package version

// Version is set at build time with -ldflags "-X github.com/linkbio/linkbio/internal/version.Version=...".
var Version = "dev"
