package chain

import "fmt"

// TransportError means the endpoint could not be reached or did not answer
// in time, or answered with a non-2xx status.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RPCError is an error envelope returned by the endpoint. Message is the
// remote message, unchanged.
type RPCError struct {
	Method  string
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("%s: rpc error %d: %s", e.Method, e.Code, e.Message)
}
