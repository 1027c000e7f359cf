package config

// Set with -ldflags, e.g.
//
//	go build -ldflags "-X fairweather/internal/config.version=1.4.0 \
//	    -X fairweather/internal/config.commit=$(git rev-parse --short HEAD)"
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// NewBuildInfo returns the linker-injected build metadata.
func NewBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
	}
}
