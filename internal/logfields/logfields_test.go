package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"JobID", KeyJobID, "job-1", JobID("job-1")},
		{"Backend", KeyBackend, "flit_core.buildapi", Backend("flit_core.buildapi")},
		{"Stage", KeyStage, "build", Stage("build")},
		{"Artifact", KeyArtifact, "mypkg-1.0.tar.gz", Artifact("mypkg-1.0.tar.gz")},
		{"Kind", KeyKind, "wheel", Kind("wheel")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Dir", KeyDir, "/proj/dist", Dir("/proj/dist")},
	}
	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Errorf("%s: key = %q, want %q", tc.name, tc.attr.Key, tc.attrKey)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Errorf("%s: value = %q, want %q", tc.name, got, tc.attrVal)
		}
	}
}

func TestError(t *testing.T) {
	if got := Error(errors.New("boom")).Value.String(); got != "boom" {
		t.Errorf("Error value = %q", got)
	}
	if got := Error(nil).Value.String(); got != "" {
		t.Errorf("Error(nil) value = %q", got)
	}
}
