// Package token issues and verifies the HS256 access tokens that identify
// logged-in accounts. Tokens travel in the "jwt" cookie or an
// "Authorization: Bearer" header.
package token
