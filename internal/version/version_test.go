package version

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	origVersion, origRead := version, readBuildInfo
	t.Cleanup(func() {
		version, readBuildInfo = origVersion, origRead
	})

	buildInfo := func(v string, ok bool) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			if !ok {
				return nil, false
			}
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}

	tests := []struct {
		name   string
		ldflag string
		readFn func() (*debug.BuildInfo, bool)
		want   string
	}{
		{"ldflags wins", "v1.4.0", buildInfo("v0.9.0", true), "1.4.0"},
		{"ldflags without prefix", "2.0.0", buildInfo("", false), "2.0.0"},
		{"module version", "", buildInfo("v0.9.0", true), "0.9.0"},
		{"devel build", "", buildInfo("(devel)", true), "dev"},
		{"no build info", "", buildInfo("", false), "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			version, readBuildInfo = tt.ldflag, tt.readFn
			if got := GetVersion(); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
