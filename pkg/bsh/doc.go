// Package bsh provides types, interfaces, and helpers for working with the
// BSH Engine REST API.
//
// # Overview
//
// The bsh package defines the wire types (Envelope, Error, Request, Search)
// and the interfaces for the service clients (EntityClient, AuthClient,
// UsersClient, ...). A concrete implementation is provided by the bshengine
// package, which wires the host, transport, authentication and interceptors.
// Most consumers should import bshengine to construct an Engine and then use
// the client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/bshengine-client/pkg/bsh"
//	  "github.com/fivetwenty-io/bshengine-client/pkg/bshengine"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  engine := bshengine.New("https://engine.example.com", bshengine.WithAPIKey("key"))
//
//	  env, err := engine.Entity("User").FindByID(ctx, "42")
//	  if err != nil { log.Fatal(err) }
//
//	  users, err := bsh.DecodeData[map[string]any](env)
//	  _ = users
//	}
//
// # Responses and callbacks
//
// Every JSON call returns an *Envelope. Non-success statuses return an
// *Error unless an OnError callback is passed, in which case the callback
// receives the error and the call returns (nil, nil). OnSuccess and
// OnDownload behave the same way for successful calls.
//
// # Interceptors
//
// Pre-interceptors may replace the outgoing request; the first one that does
// wins. Post and error interceptors are folded in registration order. The
// Metrics and EventPublisher types ship ready-made interceptors for
// Prometheus and NATS, and TracingTransport adds OpenTelemetry spans.
//
// # Errors
//
// Helpers such as IsNotFound, IsUnauthorized, and IsForbidden branch on the
// status of an *Error through errors.Is.
package bsh
