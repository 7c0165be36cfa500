package plugin

// ClusterRequest is the input of a clustering call.
type ClusterRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	// Pixels holds Width*Height non-premultiplied RGBA pixels, row-major.
	Pixels []byte `json:"pixels"`
	K      int    `json:"k"`
	// Seed makes the clustering reproducible for identical input.
	Seed int64 `json:"seed"`
}

// Centroid is one representative colour and the share of pixels it stands for.
type Centroid struct {
	R      uint8   `json:"r"`
	G      uint8   `json:"g"`
	B      uint8   `json:"b"`
	Weight float64 `json:"weight"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
}
