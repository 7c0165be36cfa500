package plugin

import (
	"context"
)

// ClusterPlugin is the interface that clusterer plugins must implement for go-plugin RPC.
type ClusterPlugin interface {
	// Cluster reduces the pixels of req to at most req.K representative colours.
	Cluster(ctx context.Context, req ClusterRequest) ([]Centroid, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
