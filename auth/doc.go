// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the credential primitives for the voting service.

# Password Hashing

Passwords are stored as bcrypt hashes, never as plaintext:

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	err = auth.CheckPassword(hash, password)

Login failure is uniform: handlers compare against FallbackHash when the
student ID is unknown, so both the error message and the latency are the
same whether the account is missing or the password is wrong.

# Session Tokens

Session tokens are 256-bit random values, URL-safe base64 without padding:

	token, err := auth.NewSessionToken()

The token is opaque; all session state lives server-side (see the session
package).

# Admin Bootstrap

The first admin account is created via a setup key compared in constant
time with ValidateSetupKey. An unconfigured key disables bootstrap.
*/
package auth
