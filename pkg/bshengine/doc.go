// Package bshengine provides the primary entry point for talking to a BSH
// Engine instance.
//
// An Engine holds the host, credentials, transport and interceptor registry.
// Every service accessor (Entity, Core, Auth, Users, Settings, Images,
// Mailing, Utils, Caching, APIKeys) builds a fresh client from the engine's
// current state, so changes made with the fluent setters apply to clients
// created afterwards. Interceptors are shared and apply to every client.
//
// Quick start
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
//
//	  // With an API key.
//	  engine, err := bshengine.NewWithAPIKey("engine.example.com", "my-key")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with a token pair. Expired access tokens are renewed before
//	  // each call.
//	  engine, err = bshengine.NewFromConfig(&bsh.Config{
//	    Host:         "https://engine.example.com",
//	    AccessToken:  "eyJhbGciOi...",
//	    RefreshToken: "eyJhbGciOi...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  orders, err := engine.Entity("Orders")
//	  if err != nil { log.Fatal(err) }
//
//	  env, err := orders.Search(ctx, bsh.NewSearch().Where("status", bsh.OpEq, "open").Page(1, 20))
//	  if err != nil { log.Fatal(err) }
//	  _ = env.Data
//	}
//
// # Callbacks
//
// Any call accepts bsh.OnSuccess, bsh.OnError and bsh.OnDownload. When the
// matching callback is set it receives the outcome and the call returns
// (nil, nil). Transport failures are always returned.
//
// # Observability
//
// WithMetrics, WithTracing and WithEventPublisher attach Prometheus metrics,
// OpenTelemetry spans and NATS call events respectively.
package bshengine
