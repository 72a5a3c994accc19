package buildtime

import (
	_ "embed"
	"strings"
)

// VERSION and revision are stamped by the release build; the checked-in
// values are placeholders for development builds.

//go:embed VERSION
var version string

//go:embed revision
var revision string

func init() {
	version = strings.TrimSpace(version)
	revision = strings.TrimSpace(revision)
}

// version string when this toolkit has been built.
func VERSION() string {
	return version
}

func GIT_REVISION() string {
	return revision
}

func VersionString() string {
	return version + " (commit: " + revision + ")"
}
