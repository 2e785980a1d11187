package app

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/agbru/limbkit/internal/limbs"
)

// Version is the release version, set with
// -ldflags "-X github.com/agbru/limbkit/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "limbcheck %s (%s, %s/%s, %d-bit limbs)\n",
		resolvedVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH, limbs.Width)
}

func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
