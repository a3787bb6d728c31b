package adapter

import "errors"

var (
	// ErrUnexpectedResponse is returned when a backend response cannot be
	// decoded or carries an unknown error.
	ErrUnexpectedResponse = errors.New("unexpected backend response")
	// ErrClientClosed is returned by an analytics client after Close.
	ErrClientClosed = errors.New("client closed")
)
