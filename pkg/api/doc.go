// Package api contains the Luminesce API clients bundled with the SDK.
//
// Each endpoint group has a capability interface (SQLExecutionAPI,
// SQLBackgroundExecutionAPI, ...) and a concrete client built from a single
// *sdk.Configuration (SQLExecutionClient, ...). Descriptors lists every
// client so that an API factory can construct them all from one
// configuration; see the apifactory package.
package api
