package rpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/session"
)

func newTestClient(t *testing.T) (*Client, *session.Registry) {
	t.Helper()

	registry := session.NewRegistry(func() []graph.Element { return graph.Seed(2019, 5, 3) }, nil)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(LoggingInterceptor(nil)))
	Register(s, NewServer(nil, registry))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Shutdown() })
	return c, registry
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestOpenDispatchClose(t *testing.T) {
	c, registry := newTestClient(t)
	ctx := testContext(t)

	id, view, err := c.Open(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, 1, registry.Len())
	assert.Len(t, view.Elements, 8)
	assert.Equal(t, "null", view.Echo.TapNode)

	view, err = c.Dispatch(ctx, id, session.Event{
		Trigger:       session.TriggerRemoveNodes,
		SelectedNodes: []graph.Data{{ID: "3", Label: "Node 3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, -1, graph.FindNode(view.Elements, "3"))
	assert.Len(t, graph.Edges(view.Elements), 3)

	view, err = c.Dispatch(ctx, id, session.Event{
		Trigger:       session.TriggerRenameNode,
		SelectedNodes: []graph.Data{{ID: "1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, session.RenamingMode("1"), view.Mode)

	view, err = c.Dispatch(ctx, id, session.Event{
		Trigger:       session.TriggerApplyRename,
		SelectedNodes: []graph.Data{{ID: "1"}},
		Value:         "Renamed",
	})
	require.NoError(t, err)
	assert.Equal(t, session.Idle, view.Mode.Kind)
	assert.Equal(t, "Renamed", view.Elements[graph.FindNode(view.Elements, "1")].Data.Label)

	require.NoError(t, c.Close(ctx, id))
	assert.Equal(t, 0, registry.Len())

	_, err = c.Dispatch(ctx, id, session.Event{Trigger: session.TriggerTapNodeData})
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, codes.NotFound, status.Code(c.Close(ctx, id)))
}

func TestDispatchUnknownTrigger(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := testContext(t)

	id, _, err := c.Open(ctx)
	require.NoError(t, err)

	_, err = c.Dispatch(ctx, id, session.Event{Trigger: "nope"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestStructRoundTrip(t *testing.T) {
	ev := session.Event{
		Trigger:       session.TriggerTapEdgeData,
		SelectedEdges: []graph.Data{{ID: "e1", Source: "1", Target: "2"}},
		Tapped:        &graph.Data{ID: "e1", Source: "1", Target: "2"},
	}
	s, err := toStruct(dispatchRequest{Session: "abc", Event: ev})
	require.NoError(t, err)

	var got dispatchRequest
	require.NoError(t, fromStruct(s, &got))
	assert.Equal(t, "abc", got.Session)
	assert.Equal(t, ev, got.Event)

	var empty closeRequest
	require.NoError(t, fromStruct(nil, &empty))
	assert.Empty(t, empty.Session)
}
