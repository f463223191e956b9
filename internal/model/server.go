package model

import (
	"context"
	"net"
)

// SecurityLayer opens the listener the API server binds to, with or
// without TLS depending on deployment.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is the lifecycle contract of the API server. Stop must drain
// in-flight requests within the context deadline.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
