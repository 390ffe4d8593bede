package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit и BuildDate опциональны
	_ = GitCommit
	_ = BuildDate
}

func TestColored(t *testing.T) {
	orig, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = orig, origNoColor }()

	// без цвета Colored совпадает с Version
	color.NoColor = true
	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.123", "0.1.0-dev", "nightly", "1.2"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}

	color.NoColor = false
	Version = "1.2.3-dev"
	if got := Colored(); got == Version {
		t.Errorf("colored output expected, got %q", got)
	}
}
