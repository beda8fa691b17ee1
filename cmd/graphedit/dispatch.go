package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/psidex/graphedit/internal/graph"
	"github.com/psidex/graphedit/internal/rpc"
	"github.com/psidex/graphedit/internal/session"
)

type dispatchFlags struct {
	addr    string
	session string
	trigger string
	nodes   []string
	edges   []string
	tap     string
	value   string
	close   bool
}

func dispatchCmd(a *app) *cobra.Command {
	f := &dispatchFlags{}

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Drive a session over the gRPC API",
		Long: "Open a session (or reuse --session), send one trigger event and print\n" +
			"the resulting view.",
		Example: "  graphedit dispatch --trigger rename-node-button --nodes 3\n" +
			"  graphedit dispatch --session <id> --trigger apply-rename-node-button --nodes 3 --value Start",
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.addr == "" {
				f.addr = a.cfg.GRPC.Address
			}
			return a.dispatch(cmd.Context(), os.Stdout, f)
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "gRPC address, defaults to grpc.address")
	cmd.Flags().StringVarP(&f.session, "session", "s", "", "existing session id, a new session is opened when empty")
	cmd.Flags().StringVarP(&f.trigger, "trigger", "t", "", "trigger id to dispatch")
	cmd.Flags().StringSliceVar(&f.nodes, "nodes", nil, "selected node ids")
	cmd.Flags().StringSliceVar(&f.edges, "edges", nil, "selected edge ids")
	cmd.Flags().StringVar(&f.tap, "tap", "", "tapped element id")
	cmd.Flags().StringVar(&f.value, "value", "", "input value, e.g. the new node name")
	cmd.Flags().BoolVar(&f.close, "close", false, "close the session afterwards")
	return cmd
}

func (a *app) dispatch(ctx context.Context, w io.Writer, f *dispatchFlags) error {
	client, err := rpc.Dial(f.addr)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	id := f.session
	var view session.View
	if id == "" {
		if id, view, err = client.Open(ctx); err != nil {
			return fmt.Errorf("opening session: %w", err)
		}
		fmt.Fprintf(w, "%s %s\n", brand.Sprint("session"), id)
	}

	if f.trigger != "" {
		view, err = client.Dispatch(ctx, id, f.event())
		if err != nil {
			return fmt.Errorf("dispatching %s: %w", f.trigger, err)
		}
		printView(w, view)
	} else if f.session == "" {
		printView(w, view)
	}

	if f.close {
		if err := client.Close(ctx, id); err != nil {
			return fmt.Errorf("closing session: %w", err)
		}
		fmt.Fprintf(w, "%s %s\n", subtle.Sprint("closed"), id)
	}
	return nil
}

func (f *dispatchFlags) event() session.Event {
	ev := session.Event{
		Trigger:       session.Trigger(f.trigger),
		SelectedNodes: asData(f.nodes),
		SelectedEdges: asData(f.edges),
		Value:         f.value,
	}
	if f.tap != "" {
		ev.Tapped = &graph.Data{ID: f.tap}
	}
	return ev
}

func asData(ids []string) []graph.Data {
	var out []graph.Data
	for _, id := range ids {
		out = append(out, graph.Data{ID: id})
	}
	return out
}

func printView(w io.Writer, v session.View) {
	nodes, edges := graph.Nodes(v.Elements), graph.Edges(v.Elements)
	fmt.Fprintf(w, "  %s %d nodes, %d edges\n", subtle.Sprint("elements"), len(nodes), len(edges))
	fmt.Fprintf(w, "  %s %s\n", subtle.Sprint("mode"), v.Mode.Kind)

	switch v.Mode.Kind {
	case session.Renaming:
		fmt.Fprintf(w, "  %s %q\n", subtle.Sprint("current name"), v.CurrentName)
	case session.CreatingEdge:
		fmt.Fprintf(w, "  %s %q -> %q\n", subtle.Sprint("edge"), v.SourceLabel, v.TargetLabel)
	}

	if v.TooManySelected {
		fmt.Fprintf(w, "  %s\n", warn.Sprint("too many nodes selected, select one node to rename"))
	}
}
