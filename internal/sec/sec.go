// Package sec provides authentication and security primitives for the web
// application.
//
// # Authentication
//
// Authentication uses server-side sessions. On login a random token is
// persisted with the owning user ID and an expiry, and delivered to the
// browser in an HMAC-signed HttpOnly cookie. On each request the middleware
// verifies the cookie signature, loads the session, and re-resolves the user
// record, attaching it to the request context as the principal.
//
// IMPORTANT: cookies are not encrypted in transit. TLS must be used in
// production to protect sessions from interception.
//
// # Components
//
//   - [SessionMiddleware]: resolves the session cookie into a request principal
//   - [RequireUser]: redirects anonymous requests before handlers run
//   - [GetAuthenticatedUser], [SetAuthenticatedUser]: context accessors
//   - [NewToken], [SignToken], [VerifyToken]: session token primitives
//   - [HashPassword], [ComparePassword]: bcrypt password hashing utilities
package sec
