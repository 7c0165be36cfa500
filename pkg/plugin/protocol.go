package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// Serve runs impl as a clusterer plugin. It is called from the plugin's main
// function and blocks until the host disconnects.
func Serve(impl ClusterPlugin) {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			ClustererPluginName: &ClusterPluginRPC{Impl: impl},
		},
	})
}

// ClientPlugins is the plugin map hosts pass to plugin.NewClient.
func ClientPlugins() map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		ClustererPluginName: &ClusterPluginRPC{},
	}
}
