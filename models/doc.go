/*
Package models defines the request, response, and domain types shared by the
handlers, session store, and voting coordinator.

Request and response field names follow the JSON contract of the web
frontend: camelCase for auth responses (userId, loggedIn, isAdmin) and
snake_case for admin listings (student_id, has_voted). Domain types carry
`json:"-"` on anything that must never leave the server, most importantly
Voter.PasswordHash.
*/
package models
