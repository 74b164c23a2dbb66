// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session implements the server-side login session store.

A session maps an opaque random token to an authenticated voter and their
role, with an absolute expiry window (two hours by default). The token
travels in an HttpOnly cookie; everything else lives in the session table.

	store := session.NewStore(db, cfg.SessionTTL)
	token, err := store.Create(voter)
	sess, err := store.Resolve(token)   // ErrInvalidSession | ErrExpiredSession
	err = store.Destroy(token)

Resolve deletes expired rows lazily; PurgeExpired sweeps the rest and is
run periodically by main.
*/
package session
