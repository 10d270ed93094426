// Package models defines the domain entities for the cfx movie discovery client.
//
// The package contains two categories of types:
//
// 1. Catalog DTOs: structs mirroring the external movie catalog's JSON shape
//   - [Movie] : Movie metadata; list responses carry a reduced projection, detail responses the full record
//   - [Genre] : Genre id/name pair attached to detail records
//   - [Page] : One page of a paginated listing response
//
// 2. Session entities: records owned by the session store
//   - [Identity] : The authenticated user's public, password-free profile
//   - [Credential] : The durable, password-including record used only during login/registration validation
//
// Credentials are serialized only by the session store and never leave the
// authentication operations.
package models
