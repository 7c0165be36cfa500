package plugin

import (
	"context"
	"encoding/json"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ClusterPluginRPC implements the go-plugin Plugin interface for clusterer plugins.
type ClusterPluginRPC struct {
	plugin.Plugin
	Impl ClusterPlugin
}

// Server returns an RPC server for this plugin.
func (p *ClusterPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ClusterPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ClusterPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ClusterPluginRPCClient{client: c}, nil
}

// ClusterPluginRPCServer is the RPC server implementation for clusterer plugins.
type ClusterPluginRPCServer struct {
	Impl ClusterPlugin
}

// Cluster implements the RPC method for clustering.
func (s *ClusterPluginRPCServer) Cluster(req ClusterRequest, resp *[]byte) error {
	centroids, err := s.Impl.Cluster(context.Background(), req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(centroids)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ClusterPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ClusterPluginRPCClient is the RPC client implementation for clusterer plugins.
type ClusterPluginRPCClient struct {
	client *rpc.Client
}

// Cluster calls the remote Cluster method. The call is abandoned when ctx is done;
// the caller is expected to kill the plugin process in that case.
func (c *ClusterPluginRPCClient) Cluster(ctx context.Context, req ClusterRequest) ([]Centroid, error) {
	var respBytes []byte
	call := c.client.Go("Plugin.Cluster", req, &respBytes, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-call.Done:
	}
	if call.Error != nil {
		return nil, &RPCError{Message: call.Error.Error()}
	}

	var centroids []Centroid
	if err := json.Unmarshal(respBytes, &centroids); err != nil {
		return nil, err
	}
	return centroids, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *ClusterPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
