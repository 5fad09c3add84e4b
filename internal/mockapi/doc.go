// Package mockapi implements an in-memory stand-in for the moola API server,
// used for local development (cmd/mockapi) and by client tests.
//
// HTTP API (mounted under /v1)
//
//	POST /auth/login
//	    {username, password} -> {accessToken, refreshToken}; 401 on bad credentials.
//
//	POST /auth/register
//	    Create an account. 201 on success, 409 when the username is taken.
//
//	GET /auth/find/{username}
//	    {success: true} when the username exists.
//
//	POST /clients/validation/validate/vendor   (bearer)
//	    {customerAccountNumber, serviceType} -> {success, data: {trxId}}.
//
//	POST /clients/payment/execute/vendor       (bearer)
//	    {phoneNumber, amount, currencySymbol, serviceType, trxId} -> {success}.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Access tokens are HS256 JWTs; an invalid or expired token gets a 401.
//   - Each trxId can be executed once.
package mockapi
