package buildinfo

import "runtime"

// These vars are set at build time via ldflags:
// -X github.com/mdomarsaleem1/calendar-analytics/pkg/buildinfo.Version=v0.3.1
// -X github.com/mdomarsaleem1/calendar-analytics/pkg/buildinfo.Commit=b806fe7
// -X github.com/mdomarsaleem1/calendar-analytics/pkg/buildinfo.BuildTime=2026-08-30T10:30:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info holds build information for the tool.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns build info under the given tool name.
func Get(name string) Info {
	return Info{
		Name:      name,
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable one-liner like "v0.3.1 (b806fe7, 2026-08-30T10:30:00Z)"
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
