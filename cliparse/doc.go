/*
Package cliparse turns CLI flags and environment variables into the server
Config.

CLI flags take precedence over environment variables; built-in defaults fill
anything left unset. The defaults run the server against a local sqlite file
with two-hour sessions:

	PORT / -p              server port (default 3000)
	DATABASE_TYPE / -t     sqlite or postgres (default sqlite)
	DATABASE_URL / -d      connection string or sqlite file (default voting.db)
	SESSION_TTL / -session-ttl  absolute session lifetime (default 2h)
	BCRYPT_COST / -bcrypt-cost  password hash cost (default: bcrypt default)
	ADMIN_SETUP_KEY / -setup-key  admin bootstrap secret (unset = disabled)

Postgres requires an explicit DATABASE_URL.
*/
package cliparse
