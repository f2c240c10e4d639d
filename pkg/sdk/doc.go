// Package sdk holds the types shared by every Luminesce API client: the client
// Configuration, the secrets-style APIConfiguration it can be derived from, the
// TokenProvider contract used to authenticate requests and the APIAccessor
// capability implemented by every generated client.
//
// Client implementations are enumerated through Descriptors. A Descriptor ties
// a concrete client type to the domain capability interface it is looked up by
// and to a constructor taking a single *Configuration:
//
//	sdk.Describe[api.SQLExecutionAPI](api.NewSQLExecutionClient)
//
// Most applications do not use this package directly beyond building a
// Configuration; the apifactory package turns a Configuration into a set of
// ready-to-use clients.
//
// # Secrets
//
// LoadAPIConfiguration reads a secrets file with an "api" section, the same
// layout used by the other LUSID SDKs:
//
//	{
//	  "api": {
//	    "tokenUrl": "https://example.identity.lusid.com/oauth2/token",
//	    "apiUrl": "https://example.lusid.com/honeycomb",
//	    "clientId": "...",
//	    "clientSecret": "...",
//	    "username": "...",
//	    "password": "...",
//	    "applicationName": "my-app"
//	  }
//	}
//
// Every value can be overridden from the environment (FBN_TOKEN_URL,
// FBN_LUMINESCE_API_URL, FBN_CLIENT_ID, ...).
package sdk
