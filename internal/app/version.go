// Package app wires configuration, engines and front ends into the ratcalc
// command: it owns mode dispatch, the evaluation lifecycle and version
// reporting.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables, set with
//
//	go build -ldflags="-X github.com/agbru/ratcalc/internal/app.Version=v0.3.0 -X github.com/agbru/ratcalc/internal/app.Commit=abc123"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether any argument asks for the version, so
// that "ratcalc -server -version" works regardless of position.
//
// Parameters:
//   - args: The arguments without the program name.
//
// Returns:
//   - bool: true when -version, --version or -V is present.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "ratcalc %s\n", Version)
	fmt.Fprintf(out, "  Commit:     %s\n", Commit)
	fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// VersionData is the JSON form of the version banner.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
