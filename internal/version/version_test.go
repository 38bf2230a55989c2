package version

import (
	"strings"
	"testing"
)

func TestVersionHasSemverShape(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must not be empty")
	}
	// Two dots regardless of color escapes around the parts.
	if strings.Count(Version, ".") != 2 {
		t.Fatalf("Version = %q, want major.minor.patch", Version)
	}
}

func TestBuildMetadataOverridable(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	GitCommit = "abc123def456"
	if GitCommit != "abc123def456" {
		t.Fatalf("GitCommit = %q", GitCommit)
	}
}
