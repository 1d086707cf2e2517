package domain

// Connection is one client's outbound channel. Send must be safe to
// call from any goroutine; a failed Send marks the connection dead for
// the broadcaster's pruning pass.
type Connection interface {
	Send(msg any) error
	Close() error
}
