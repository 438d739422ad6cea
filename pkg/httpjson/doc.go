// Package httpjson holds the JSON request and response helpers shared by the
// HTTP handlers: a response envelope, typed HTTP errors, strict body decoding
// and struct validation backed by go-playground/validator.
package httpjson
