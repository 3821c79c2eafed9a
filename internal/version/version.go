package version

import (
	"fmt"
	"runtime"
	"time"

	"github.com/samcharles93/matfile/pkg/matfile"
)

var (
	// Version is the release version (set via -ldflags).
	Version = ""
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// BuildTime is the build timestamp (set via -ldflags).
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`

	// FileFormat is the matfile layout revision written by this build.
	FileFormat string `json:"file_format"`
}

func Resolve() Info {
	resolved := Info{
		Version:    Version,
		Commit:     Commit,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		FileFormat: FileFormat(),
	}

	if resolved.Version == "" {
		if resolved.BuildTime != "" {
			resolved.Version = resolved.BuildTime
		} else {
			resolved.Version = "dev-" + time.Now().UTC().Format("20060102")
		}
	}

	return resolved
}

// FileFormat renders the current matfile format revision, eg "0.7".
func FileFormat() string {
	return fmt.Sprintf("%d.%d", matfile.CurrentMajor, matfile.CurrentMinor)
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
