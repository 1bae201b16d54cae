// Package tinkoff wraps the brokerage gRPC API: one shared TLS channel,
// bearer-token injection on every call, and typed handles to the three
// service stubs the ingestion pipelines use.
package tinkoff

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/metadata"
)

// Config controls the gRPC channel construction.
type Config struct {
	// Domain is the host:port of the brokerage gRPC endpoint.
	Domain string
	// Token is the bearer token sent as `authorization: Bearer <token>`.
	Token string
	// Timeout bounds every unary RPC issued through this client.
	Timeout time.Duration
	// KeepaliveInterval is the gRPC (HTTP/2) keepalive ping interval.
	KeepaliveInterval time.Duration
}

// Client owns the channel and exposes the three service stubs the
// ingestion pipelines call.
type Client struct {
	conn *grpc.ClientConn

	Instruments       pb.InstrumentsServiceClient
	MarketData        pb.MarketDataServiceClient
	MarketDataStream  pb.MarketDataStreamServiceClient

	timeout time.Duration
}

// Dial builds the shared TLS channel with system root verification, a
// bearer-token interceptor on every unary and streaming call, and gRPC
// keepalive pings, then constructs the typed service clients over it.
func Dial(cfg Config) (*Client, error) {
	creds := credentials.NewTLS(&tls.Config{ServerName: serverName(cfg.Domain)})

	conn, err := grpc.NewClient(
		cfg.Domain,
		grpc.WithTransportCredentials(creds),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:                cfg.KeepaliveInterval,
			Timeout:             cfg.Timeout,
			PermitWithoutStream: true,
		}),
		grpc.WithUnaryInterceptor(bearerUnaryInterceptor(cfg.Token)),
		grpc.WithStreamInterceptor(bearerStreamInterceptor(cfg.Token)),
	)
	if err != nil {
		return nil, fmt.Errorf("tinkoff: dial: %w", err)
	}

	return &Client{
		conn:             conn,
		Instruments:      pb.NewInstrumentsServiceClient(conn),
		MarketData:       pb.NewMarketDataServiceClient(conn),
		MarketDataStream: pb.NewMarketDataStreamServiceClient(conn),
		timeout:          cfg.Timeout,
	}, nil
}

// Close releases the underlying channel.
func (c *Client) Close() error {
	return c.conn.Close()
}

// CallContext derives a context bounded by the channel's configured timeout,
// for callers issuing a single unary RPC.
func (c *Client) CallContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func serverName(domain string) string {
	for i := 0; i < len(domain); i++ {
		if domain[i] == ':' {
			return domain[:i]
		}
	}
	return domain
}

func bearerUnaryInterceptor(token string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		return invoker(withBearer(ctx, token), method, req, reply, cc, opts...)
	}
}

func bearerStreamInterceptor(token string) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		return streamer(withBearer(ctx, token), desc, cc, method, opts...)
	}
}

func withBearer(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}
