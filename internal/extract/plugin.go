package extract

import (
	"context"
	"fmt"
	"image"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/dyematch/internal/colour"
	"github.com/jmylchreest/dyematch/pkg/plugin"
)

// PluginClusterer runs clustering in an external plugin executable.
// A fresh plugin process is started for every call and killed when it returns.
type PluginClusterer struct {
	path   string
	logger hclog.Logger
	seed   int64
}

// NewPluginClusterer creates a clusterer backed by the executable at path.
// A nil logger discards plugin output.
func NewPluginClusterer(path string, logger hclog.Logger) *PluginClusterer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &PluginClusterer{path: path, logger: logger.Named("plugin")}
}

// WithSeed fixes the seed sent to the plugin instead of deriving it from the image.
func (p *PluginClusterer) WithSeed(seed int64) *PluginClusterer {
	p.seed = seed
	return p
}

// Cluster implements Clusterer.
func (p *PluginClusterer) Cluster(ctx context.Context, img *image.NRGBA, k int) ([]Centroid, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if k < 1 || k > MaxColours {
		return nil, fmt.Errorf("colour count must be between 1 and %d, got %d", MaxColours, k)
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig:  plugin.Handshake,
		Plugins:          plugin.ClientPlugins(),
		Cmd:              exec.Command(p.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           p.logger,
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.ClustererPluginName)
	if err != nil {
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}
	remote, ok := raw.(*plugin.ClusterPluginRPCClient)
	if !ok {
		return nil, fmt.Errorf("plugin %s returned unexpected client type %T", p.path, raw)
	}

	info, err := remote.GetMetadata()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin metadata: %w", err)
	}
	if err := plugin.IsCompatible(info.ProtocolVersion); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", info.Name, err)
	}
	p.logger.Debug("plugin connected", "name", info.Name, "version", info.Version, "protocol", info.ProtocolVersion)

	req := NewClusterRequest(img, k)
	if p.seed != 0 {
		req.Seed = p.seed
	}

	remoteCentroids, err := remote.Cluster(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("plugin %s failed to cluster: %w", info.Name, err)
	}

	return FromPluginCentroids(remoteCentroids, k), nil
}

// NewClusterRequest packs an image into a plugin request.
func NewClusterRequest(img *image.NRGBA, k int) plugin.ClusterRequest {
	b := img.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		pix = append(pix, img.Pix[off:off+b.Dx()*4]...)
	}
	return plugin.ClusterRequest{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: pix,
		K:      k,
		Seed:   ContentSeed(img),
	}
}

// ImageFromRequest rebuilds the image carried by a plugin request.
func ImageFromRequest(req plugin.ClusterRequest) (*image.NRGBA, error) {
	if req.Width < 0 || req.Height < 0 || len(req.Pixels) != req.Width*req.Height*4 {
		return nil, fmt.Errorf("malformed request: %dx%d with %d bytes", req.Width, req.Height, len(req.Pixels))
	}
	return &image.NRGBA{
		Pix:    req.Pixels,
		Stride: req.Width * 4,
		Rect:   image.Rect(0, 0, req.Width, req.Height),
	}, nil
}

// FromPluginCentroids converts plugin centroids, keeping at most k.
func FromPluginCentroids(in []plugin.Centroid, k int) []Centroid {
	out := make([]Centroid, 0, len(in))
	for _, c := range in {
		out = append(out, Centroid{Colour: colour.RGB{R: c.R, G: c.G, B: c.B}, Weight: c.Weight})
	}
	out = normalise(out)
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// ToPluginCentroids converts centroids for sending over the plugin protocol.
func ToPluginCentroids(in []Centroid) []plugin.Centroid {
	out := make([]plugin.Centroid, len(in))
	for i, c := range in {
		out[i] = plugin.Centroid{R: c.Colour.R, G: c.Colour.G, B: c.Colour.B, Weight: c.Weight}
	}
	return out
}
