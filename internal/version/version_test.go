package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/go-test/deep"
)

func TestCurrentTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = "  "
	GitCommit = " abc123\n"
	BuildDate = "2024-01-15T10:30:00Z"

	want := Info{Version: "dev", GitCommit: "abc123", BuildDate: "2024-01-15T10:30:00Z"}
	if diff := deep.Equal(Current(), want); diff != nil {
		t.Fatalf("unexpected info: %v", diff)
	}
}

func TestColoredWithoutColor(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	for _, v := range []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "dev", "1.2"} {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q", v, got)
		}
	}
}

func TestColoredPaintsComponents(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	got := Colored("1.2.3-dev")
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Fatalf("unexpected coloring %q", got)
	}
	if Colored("dev") != "dev" {
		t.Fatalf("non-semantic versions must not be painted")
	}
}
