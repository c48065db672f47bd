package rawversion

// RawVersion is the raw version string.
//
// This indirection keeps the semver dependency out of packages that only
// need to print the version.
const RawVersion = "0.1.0"
