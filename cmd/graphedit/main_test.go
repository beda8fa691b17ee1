package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/psidex/graphedit/internal/config"
	"github.com/psidex/graphedit/internal/lib"
	"github.com/psidex/graphedit/internal/rpc"
	"github.com/psidex/graphedit/internal/session"
)

func init() {
	color.NoColor = true
}

func testApp(t *testing.T) *app {
	t.Helper()
	cfg := config.Default()
	cfg.Seed.Nodes, cfg.Seed.Edges = 5, 4
	return &app{cfg: cfg, logger: lib.NopLogger()}
}

// startGRPC serves the editor API on a loopback port and returns its address.
func startGRPC(t *testing.T, a *app) (string, *session.Registry) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	registry := session.NewRegistry(a.cfg.Seed.Elements, nil)
	s := grpc.NewServer()
	rpc.Register(s, rpc.NewServer(nil, registry))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	return lis.Addr().String(), registry
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestExport(t *testing.T) {
	a := testApp(t)
	dir := t.TempDir()

	for _, provider := range []string{"echarts", "json", "adjacency"} {
		t.Run(provider, func(t *testing.T) {
			filename, err := a.export(provider, filepath.Join(dir, provider))
			require.NoError(t, err)

			info, err := os.Stat(filename)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	_, err := a.export("graphviz", filepath.Join(dir, "nope"))
	assert.Error(t, err)
}

func TestDispatchOpensAndCloses(t *testing.T) {
	a := testApp(t)
	addr, registry := startGRPC(t, a)

	var out bytes.Buffer
	err := a.dispatch(testContext(t), &out, &dispatchFlags{
		addr:    addr,
		trigger: string(session.TriggerRemoveNodes),
		nodes:   []string{"1", "2"},
		close:   true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "session ")
	assert.Contains(t, out.String(), "3 nodes, 4 edges")
	assert.Contains(t, out.String(), "closed ")
	assert.Equal(t, 0, registry.Len())
}

func TestDispatchReusesSession(t *testing.T) {
	a := testApp(t)
	addr, registry := startGRPC(t, a)

	id, _ := registry.Open()

	var out bytes.Buffer
	err := a.dispatch(testContext(t), &out, &dispatchFlags{
		addr:    addr,
		session: id,
		trigger: string(session.TriggerRenameNode),
		nodes:   []string{"1", "2"},
	})
	require.NoError(t, err)
	assert.NotContains(t, out.String(), "session ")
	assert.Contains(t, out.String(), "too many nodes selected")

	out.Reset()
	err = a.dispatch(testContext(t), &out, &dispatchFlags{
		addr:    addr,
		session: id,
		trigger: string(session.TriggerRenameNode),
		nodes:   []string{"3"},
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "mode renaming")
	assert.Contains(t, out.String(), `current name "Node 3"`)
}

func TestDispatchUnknownSession(t *testing.T) {
	a := testApp(t)
	addr, _ := startGRPC(t, a)

	err := a.dispatch(testContext(t), &bytes.Buffer{}, &dispatchFlags{
		addr:    addr,
		session: "missing",
		trigger: string(session.TriggerRemoveNodes),
	})
	assert.Error(t, err)
}

func TestRootLoadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graphedit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"warn\"\n[seed]\nnodes = 3\n"), 0o644))

	a := &app{cfgPath: path, logLevel: "debug"}
	require.NoError(t, a.load())
	assert.Equal(t, "debug", a.cfg.Log.Level)
	assert.Equal(t, 3, a.cfg.Seed.Nodes)
	assert.NotNil(t, a.logger)

	a = &app{cfgPath: path, logLevel: "loud"}
	assert.Error(t, a.load())
}

func freeAddr(t *testing.T) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())
	return addr
}

func TestServeGRPCAddressTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	a := testApp(t)
	a.cfg.HTTP.Address = freeAddr(t)
	a.cfg.GRPC.Enabled = true
	a.cfg.GRPC.Address = taken.Addr().String()

	require.Error(t, a.serve(testContext(t)))

	// The webserver never bound its address.
	lis, err := net.Listen("tcp", a.cfg.HTTP.Address)
	require.NoError(t, err)
	require.NoError(t, lis.Close())
}

func TestServeShutsDown(t *testing.T) {
	a := testApp(t)
	a.cfg.HTTP.Address = "127.0.0.1:0"
	a.cfg.GRPC.Enabled = true
	a.cfg.GRPC.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
