// Command dyematch-cluster-kmeans is a reference clusterer plugin. It serves the
// built-in k-means clusterer over the plugin protocol so hosts can exercise
// PluginClusterer end to end, and doubles as a template for custom clusterers.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmylchreest/dyematch/internal/extract"
	"github.com/jmylchreest/dyematch/internal/version"
	"github.com/jmylchreest/dyematch/pkg/plugin"
)

// KMeansPlugin implements plugin.ClusterPlugin.
type KMeansPlugin struct {
	kmeans *extract.KMeans
}

// Cluster implements plugin.ClusterPlugin.
func (p *KMeansPlugin) Cluster(ctx context.Context, req plugin.ClusterRequest) ([]plugin.Centroid, error) {
	img, err := extract.ImageFromRequest(req)
	if err != nil {
		return nil, err
	}

	km := *p.kmeans
	km.Seed = req.Seed
	centroids, err := km.Cluster(ctx, img, req.K)
	if err != nil {
		return nil, err
	}
	return extract.ToPluginCentroids(centroids), nil
}

// GetMetadata implements plugin.ClusterPlugin.
func (p *KMeansPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "kmeans",
		Version:         version.Short(),
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "k-means++ colour clustering",
	}
}

func main() {
	p := &KMeansPlugin{kmeans: extract.NewKMeans()}

	// Handle --plugin-info flag
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(p.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(p)
}
