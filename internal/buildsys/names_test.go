package buildsys

import "testing"

func TestParseWheelName(t *testing.T) {
	tests := []struct {
		filename string
		name     string
		version  string
		ok       bool
	}{
		{"mypkg-1.0-py3-none-any.whl", "mypkg", "1.0", true},
		{"mypkg-1.0-1-py3-none-any.whl", "mypkg", "1.0", true}, // build tag
		{"requests-2.31.0-py3-none-any.whl", "requests", "2.31.0", true},
		{"numpy-1.26.4-cp312-cp312-manylinux_2_17_x86_64.whl", "numpy", "1.26.4", true},
		{"not-a-wheel.tar.gz", "Unknown", "", false},
		{"short-1.0.whl", "Unknown", "", false},
		{"too-many-parts-in-this-wheel-name-1.whl", "Unknown", "", false},
		{"-1.0-py3-none-any.whl", "Unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, version, ok := ParseWheelName(tt.filename)
			if ok != tt.ok || name != tt.name {
				t.Errorf("ParseWheelName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.filename, name, version, ok, tt.name, tt.version, tt.ok)
			}
			if ok && version != tt.version {
				t.Errorf("version = %q, want %q", version, tt.version)
			}
		})
	}
}

func TestParseSdistName(t *testing.T) {
	tests := []struct {
		filename string
		name     string
		version  string
		ok       bool
	}{
		{"mypkg-1.0.tar.gz", "mypkg", "1.0", true},
		{"my-pkg-2.3.1.tar.gz", "my-pkg", "2.3.1", true},
		{"mypkg-1.0.zip", "mypkg", "1.0", true},
		{"mypkg-1.0.tgz", "mypkg", "1.0", true},
		{"noversion.tar.gz", "Unknown", "", false},
		{"-1.0.tar.gz", "Unknown", "", false},
		{"trailing-.tar.gz", "Unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			name, version, ok := ParseSdistName(tt.filename)
			if ok != tt.ok || name != tt.name {
				t.Errorf("ParseSdistName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.filename, name, version, ok, tt.name, tt.version, tt.ok)
			}
			if ok && version != tt.version {
				t.Errorf("version = %q, want %q", version, tt.version)
			}
		})
	}
}
