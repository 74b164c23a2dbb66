// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides the HTTP cross-cutting helpers: request logging,
session guards, CORS, and JSON encoding.

# Session Guards

RequireLogin resolves the session cookie against the injected store and
rejects unauthenticated requests with 401; RequireAdmin additionally
rejects non-admin sessions with 403. Handlers downstream read the resolved
session from the request context:

	sess, ok := middleware.SessionFrom(r)

# JSON Helpers

JSONResponse and ErrorResponse write the shared response envelope;
ParseJSONBody decodes request bodies. All failures surfaced to clients go
through ErrorResponse so every error body has the same {error, message}
shape.
*/
package middleware
