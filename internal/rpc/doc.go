// Package rpc provides a JSON-RPC 2.0 over HTTP implementation of the
// domain.ClusterClient interface.
//
// Requests are encoded and replies decoded with gorilla's json2 codec. Every
// call takes a context for cancellation and deadlines. Transport failures and
// non-2xx statuses are returned as *Error naming the RPC method; error objects
// returned by the cluster surface as *json2.Error wrapped in *Error.
//
// ConfirmTransaction polls getSignatureStatuses until the configured
// commitment is reached, the transaction fails, or the confirm timeout elapses.
package rpc
