// Package pkg holds application-wide metadata set at build time.
package pkg

var (
	// Version is the application version, set via ldflags.
	Version = "v0.0.1"

	// Build is the build timestamp, set via ldflags.
	Build = "n/a"
)
