package version

import (
	"strings"
	"testing"
)

func TestFileFormat(t *testing.T) {
	if got := FileFormat(); got != "0.7" {
		t.Fatalf("FileFormat() = %q want 0.7", got)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("shortCommit long = %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("shortCommit short = %q", got)
	}
}

func TestResolve(t *testing.T) {
	Version, Commit, BuildTime = "", "", ""
	info := Resolve()
	if !strings.HasPrefix(info.Version, "dev-") {
		t.Fatalf("unset version: got %q", info.Version)
	}
	if info.GoVersion == "" || info.FileFormat != FileFormat() {
		t.Fatalf("info: %+v", info)
	}

	Version, Commit = "v1.2.0", "feedfacecafebeef00"
	t.Cleanup(func() { Version, Commit = "", "" })
	if got := String(); got != "v1.2.0 (feedfacecafe)" {
		t.Fatalf("String() = %q", got)
	}
}
