package model

// DecodeError records why one account was not decoded.
type DecodeError struct {
	Kind    string `json:"kind"`
	Account string `json:"account"`
	Index   int    `json:"index"`
	Length  int    `json:"length"`
	Error   string `json:"error"`
}
