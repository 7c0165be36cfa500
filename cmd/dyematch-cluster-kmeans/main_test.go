package main

import (
	"context"
	"testing"

	"github.com/jmylchreest/dyematch/internal/extract"
	"github.com/jmylchreest/dyematch/pkg/plugin"
)

func TestKMeansPluginCluster(t *testing.T) {
	p := &KMeansPlugin{kmeans: extract.NewKMeans()}

	pixels := []byte{
		255, 0, 0, 255, 255, 0, 0, 255,
		0, 0, 255, 255, 255, 0, 0, 255,
	}
	got, err := p.Cluster(context.Background(), plugin.ClusterRequest{Width: 2, Height: 2, Pixels: pixels, K: 2, Seed: 7})
	if err != nil {
		t.Fatalf("Cluster() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Cluster() returned %d centroids, want 2", len(got))
	}
	if got[0] != (plugin.Centroid{R: 255, Weight: 0.75}) || got[1] != (plugin.Centroid{B: 255, Weight: 0.25}) {
		t.Errorf("Cluster() = %+v", got)
	}

	if _, err := p.Cluster(context.Background(), plugin.ClusterRequest{Width: 3, Height: 3, Pixels: pixels, K: 1}); err == nil {
		t.Error("Cluster() expected error for malformed request")
	}
}

func TestKMeansPluginMetadata(t *testing.T) {
	info := (&KMeansPlugin{}).GetMetadata()
	if info.Name != "kmeans" || info.ProtocolVersion != plugin.ProtocolVersion {
		t.Errorf("GetMetadata() = %+v", info)
	}
	if err := plugin.IsCompatible(info.ProtocolVersion); err != nil {
		t.Errorf("plugin advertises incompatible protocol: %v", err)
	}
}
