package version

// Version is the dazzlepack tool version.
const Version = "0.3.0"
