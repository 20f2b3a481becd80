// Package cellbridge holds shared metadata for the cellbridge backend.
package cellbridge

// Version is the current cellbridge release.
const Version = "0.2.0"
