// Package nverrors defines the error taxonomy shared by the ordered store and
// the name/value collection.
//
// Every error is a typed struct embedding the underlying error, matched with
// errors.As, and maps onto a gRPC status for callers that surface collection
// failures over an API.
package nverrors
