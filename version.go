// Package chisel carries module-level metadata for the structural-editor
// libraries under expr, token, and editor. The version string ships inside
// the binary so cmd/chisel can report it without build-time flags.
package chisel

import (
	_ "embed"
	"regexp"
	"strings"
)

//go:embed VERSION
var rawVersion string

// semverRE matches SemVer 2.0.0: MAJOR.MINOR.PATCH with optional
// pre-release and build-metadata suffixes.
var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

// Version returns the embedded module version, without the leading v.
func Version() string {
	return strings.TrimSpace(rawVersion)
}

// VersionTag returns Version in git-tag form.
func VersionTag() string {
	return "v" + Version()
}

// IsSemver reports whether v is a valid SemVer 2.0.0 string.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}

// VersionIsSemver reports whether the embedded version is valid SemVer.
// The VERSION file is hand-edited on release, so tests gate on this.
func VersionIsSemver() bool {
	return IsSemver(Version())
}
