package preview

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by a Conn after either side closed it.
var ErrClosed = errors.New("preview: connection closed")

// Conn is one end of a preview channel.  ReadMessage and WriteMessage may
// be called from different goroutines, but each from one goroutine only.
type Conn interface {
	ReadMessage(ctx context.Context) ([]byte, error)
	WriteMessage(ctx context.Context, b []byte) error
	Close() error
}

// pipeBuffer is how many messages a Pipe end holds before writers block.
const pipeBuffer = 64

type pipeEnd struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// Pipe returns two connected in-memory ends.  Messages are delivered in
// send order per direction.  Closing either end closes both.
func Pipe() (host, frame Conn) {
	h2f := make(chan []byte, pipeBuffer)
	f2h := make(chan []byte, pipeBuffer)
	done := make(chan struct{})
	once := &sync.Once{}
	return &pipeEnd{in: f2h, out: h2f, done: done, once: once},
		&pipeEnd{in: h2f, out: f2h, done: done, once: once}
}

func (p *pipeEnd) ReadMessage(ctx context.Context) ([]byte, error) {
	select {
	case b := <-p.in:
		return b, nil
	case <-p.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *pipeEnd) WriteMessage(ctx context.Context, b []byte) error {
	// A closed pipe must not accept writes even when buffer space is left.
	select {
	case <-p.done:
		return ErrClosed
	default:
	}
	cp := append([]byte(nil), b...)
	select {
	case p.out <- cp:
		return nil
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *pipeEnd) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}
