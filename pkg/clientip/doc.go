// Package clientip resolves the address of the client behind a request and
// carries it in the request context, mainly so security events can be logged
// with their origin.
//
// Forwarded headers are ignored unless WithTrustProxy is set:
//
//	r.Use(clientip.New(clientip.WithTrustProxy()))
//
// LogExtractor plugs the stored address into pkg/logger as client_ip.
package clientip
