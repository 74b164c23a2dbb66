// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP route table using Go 1.22+ method routing.

Routes fall into four groups:

  - account: POST /register, /login, /logout and GET /me
  - public reads: GET /candidates, GET /results
  - voting: POST /vote (behind RequireLogin)
  - admin: POST /admin/candidates, GET /admin/users, GET /admin/stats
    (behind RequireAdmin), POST /create-admin (setup key)

Every route is wrapped in WithLogging; the whole mux is wrapped in CORS for
the browser frontend. The session store is built here and injected into the
handlers and guards.
*/
package router
