package listener

import (
	"errors"
	"log"
	"net"
)

// ResilientListener wraps net.Listener so that recoverable accept errors are handled
// gracefully instead of crashing the server.
type ResilientListener struct {
	net.Listener
}

func NewResilientListener(listenerToWrap net.Listener) *ResilientListener {
	return &ResilientListener{Listener: listenerToWrap}
}

// Accept will gracefully handle recoverable errors and continue without crashing the server
func (l *ResilientListener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if err != nil {
			// If the listener was closed, this is a fatal error. Propagate it.
			if errors.Is(err, net.ErrClosed) {
				return nil, err
			}

			// For any other error, log it and continue to the next connection attempt.
			log.Printf("Recoverable listener error, connection rejected: %v", err)
			continue
		}
		return conn, nil
	}
}
