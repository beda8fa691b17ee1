package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/psidex/graphedit/internal/session"
)

// Client is the client side of graphedit.v1.Editor.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// Dial connects to addr without transport security; extra options are appended.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{cc: conn, conn: conn}, nil
}

// NewClient uses an existing connection, which the caller keeps ownership of.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Shutdown closes the connection if Dial opened it.
func (c *Client) Shutdown() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) Open(ctx context.Context) (string, session.View, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, openMethod, &structpb.Struct{}, out); err != nil {
		return "", session.View{}, err
	}
	var rep openReply
	if err := fromStruct(out, &rep); err != nil {
		return "", session.View{}, err
	}
	return rep.Session, rep.View, nil
}

func (c *Client) Dispatch(ctx context.Context, id string, ev session.Event) (session.View, error) {
	in, err := toStruct(dispatchRequest{Session: id, Event: ev})
	if err != nil {
		return session.View{}, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, dispatchMethod, in, out); err != nil {
		return session.View{}, err
	}
	var view session.View
	if err := fromStruct(out, &view); err != nil {
		return session.View{}, err
	}
	return view, nil
}

func (c *Client) Close(ctx context.Context, id string) error {
	in, err := toStruct(closeRequest{Session: id})
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, closeMethod, in, new(structpb.Struct))
}
