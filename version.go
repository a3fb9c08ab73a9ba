package scipaper

import "fmt"

// Version is the library's fixed semantic version (SUPPLEMENTED from
// src/scipaper.c's VersionFixed{1, 0, 0} — a compile-time constant, not a
// build-injected value).
type Version struct {
	Major, Minor, Patch uint
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// LibraryVersion returns the fixed library version.
func LibraryVersion() Version {
	return Version{Major: 1, Minor: 0, Patch: 0}
}
