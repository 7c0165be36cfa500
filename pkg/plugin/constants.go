// Package plugin provides the public API for dyematch clusterer plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "1.0.0"

	// MinCompatibleVersion is the oldest protocol version this dyematch version can work with.
	MinCompatibleVersion = "1.0.0"

	// ClustererPluginName is the key the clusterer is registered and dispensed under.
	ClustererPluginName = "clusterer"
)

// Handshake is the handshake configuration for go-plugin protocol.
// go-plugin only compares the major version; the full semantic check is IsCompatible.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(CurrentVersion().Major),
	MagicCookieKey:   "DYEMATCH_PLUGIN",
	MagicCookieValue: "dyematch_clusterer",
}
