// Package api provides the typed HTTP client for the moola API server.
//
// Every call goes through the authenticated gateway, so bearer credentials and
// 401 handling are applied uniformly. Supported operations:
//   - POST /auth/login
//   - POST /auth/register
//   - GET  /auth/find/{username}
//   - POST /clients/validation/validate/vendor
//   - POST /clients/payment/execute/vendor
package api
