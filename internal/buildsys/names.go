package buildsys

import "strings"

// UnknownName is the degraded project name used when an artifact filename
// does not follow the expected grammar. Derivation never fails on it.
const UnknownName = "Unknown"

// ParseWheelName extracts the distribution name and version from a wheel
// filename following PEP 427:
//
//	{distribution}-{version}(-{build tag})?-{python tag}-{abi tag}-{platform tag}.whl
//
// The distribution segment cannot contain dashes, so splitting on "-" is
// unambiguous. ok is false when the filename does not match the grammar.
func ParseWheelName(filename string) (name, version string, ok bool) {
	base, found := strings.CutSuffix(filename, ".whl")
	if !found {
		return UnknownName, "", false
	}
	parts := strings.Split(base, "-")
	if len(parts) < 5 || len(parts) > 6 {
		return UnknownName, "", false
	}
	if parts[0] == "" || parts[1] == "" {
		return UnknownName, "", false
	}
	return parts[0], parts[1], true
}

// ParseSdistName extracts the distribution name and version from an sdist
// filename ({name}-{version}.tar.gz and friends). The name may itself
// contain dashes, so the version is taken from the last dash-separated
// segment. ok is false when the filename does not match the grammar.
func ParseSdistName(filename string) (name, version string, ok bool) {
	base := filename
	for _, suffix := range []string{".tar.gz", ".tgz", ".tar", ".zip"} {
		if trimmed, found := strings.CutSuffix(base, suffix); found {
			base = trimmed
			break
		}
	}
	idx := strings.LastIndex(base, "-")
	if idx <= 0 || idx == len(base)-1 {
		return UnknownName, "", false
	}
	return base[:idx], base[idx+1:], true
}
