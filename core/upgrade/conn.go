package upgrade

import "net/http"

// Conn is an established duplex connection after a completed upgrade.
// *websocket.Conn from gorilla/websocket satisfies it.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Options are the accept parameters supplied by the negotiating middleware.
type Options struct {
	// Subprotocol selects the subprotocol announced in the handshake response.
	Subprotocol string

	// Header holds extra handshake response headers.
	Header http.Header

	// Params carries free-form accept parameters from dictionary-convention callers.
	Params map[string]any
}
