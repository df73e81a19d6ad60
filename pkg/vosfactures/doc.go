// Package vosfactures provides types, interfaces, and helpers for working with
// the VosFactures invoicing API.
//
// # Overview
//
// Remote resources (clients, products, departments and invoices) are held in
// Record values: map-backed copies of the JSON objects returned by the service,
// bound to a static Descriptor that lists the declared fields, their defaults,
// the fields only the service may set, and the endpoints serving each
// operation. A Repository runs create, get and list for one entity; records
// returned by it can be updated and deleted in place.
//
// The concrete client is built by the vfclient package:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/briceparent/vosfactures/pkg/vfclient"
//	  "github.com/briceparent/vosfactures/pkg/vosfactures"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := vfclient.NewWithToken(ctx, "acme.vosfactures.fr", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  client, err := cli.Clients().Create(ctx, vosfactures.Fields{"name": "Acme"})
//	  if err != nil { log.Fatal(err) }
//
//	  _ = client.SetField("city", "Lyon")
//	  if _, err := client.Update(ctx); err != nil { log.Fatal(err) }
//	}
//
// # Command table
//
// Every operation first passes a Gate: the entity may forbid it outright
// (departments cannot be created, updated or deleted) and the process-wide
// CommandTable must list it. Both checks run before any validation or network
// call.
//
// # Errors
//
// Failures are reported with typed errors (ValidationError,
// CommandUnavailableError, ObjectIsDeletedError, FieldProtectionError,
// HTTPError) that can be matched with errors.As or the IsX helpers.
package vosfactures
