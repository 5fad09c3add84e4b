// Package main runs the in-memory mobile-money API used by moola during
// development and tests.
//
// HTTP API (all under /v1)
//
//	POST /auth/login
//	    Exchange {username, password} for {accessToken, refreshToken}.
//	    401 with {"message": "..."} on bad credentials.
//
//	POST /auth/register
//	    Create an account. 201 on success, 409 if the username exists.
//
//	GET /auth/find/{username}
//	    {"success": true} when the username is taken.
//
//	POST /clients/validation/validate/vendor      (bearer token)
//	    Check a customer account for a service and open a transaction.
//	    Returns {"success": true, "data": {"trxId": "..."}}.
//
//	POST /clients/payment/execute/vendor          (bearer token)
//	    Execute an open transaction once.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Access tokens are HS256 JWTs with a short lifetime (mock.access_ttl), so
//     the client's expiry handling can be exercised by waiting.
//   - Requests with a missing, invalid or expired token get 401.
//   - Every request is logged with method, path, status and duration.
//   - Users may be seeded with -seed user:password (repeatable).
//   - The default listen address is :8080.
package main
