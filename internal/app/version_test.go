package app

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"Empty args", []string{}, false},
		{"Expression only", []string{"-e", "<1/2> + 1"}, false},
		{"Long version flag", []string{"--version"}, true},
		{"Short version flag", []string{"-V"}, true},
		{"Single dash", []string{"-version"}, true},
		{"After other flags", []string{"-server", "-port", "9000", "--version"}, true},
		{"Similar but not version", []string{"--verbose", "-v"}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HasVersionFlag(tc.args); got != tc.expected {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, got, tc.expected)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	PrintVersion(&buf)

	output := buf.String()
	for _, want := range []string{"ratcalc " + Version, "Commit:", "Built:", runtime.Version(), runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintVersion output should contain %q, got:\n%s", want, output)
		}
	}
}

func TestGetVersionInfo(t *testing.T) {
	t.Parallel()
	info := GetVersionInfo()
	want := VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
	if info != want {
		t.Errorf("GetVersionInfo() = %+v, want %+v", info, want)
	}
}
