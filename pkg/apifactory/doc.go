// Package apifactory builds every bundled Luminesce API client from one shared
// configuration and hands them out by type.
//
// Quick start
//
//	secrets, err := sdk.LoadAPIConfiguration("secrets.json")
//	if err != nil { log.Fatal(err) }
//
//	factory, err := apifactory.NewFromAPIConfiguration(secrets)
//	if err != nil { log.Fatal(err) }
//
//	sql, err := apifactory.API[api.SQLExecutionAPI](factory)
//	if err != nil { log.Fatal(err) }
//
//	csv, err := sql.GetByQuery(ctx, api.FormatCSV, "select * from Sys.Field limit 5", nil)
//
// Each client is constructed exactly once per factory and is registered under
// both its concrete type (*api.SQLExecutionClient) and its capability interface
// (api.SQLExecutionAPI); both lookups return the same instance. A factory is
// immutable once New returns and is safe for concurrent use.
//
// # Errors
//
// Construction fails with sdk.ErrInvalidConfiguration or sdk.ErrInvalidURL
// for bad input, and with sdk.ErrConstructionFailure when a client cannot be
// built or declares no capability interface. No partially built factory is
// ever returned. Lookups of unregistered types fail with sdk.ErrAPINotFound.
package apifactory
