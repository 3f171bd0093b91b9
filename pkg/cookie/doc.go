// Package cookie reads and writes HTTP cookies, optionally HMAC-signed.
//
// Plain cookies work without a secret:
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	value, err := m.Get(r, "theme")
//
// Signed cookies need a secret. Tampered or unsigned values are rejected
// with [ErrBadSig]:
//
//	m := cookie.New(
//		cookie.WithSecret(os.Getenv("SESSION_SECRET")),
//		cookie.WithSecure(true),
//	)
//	if err := m.SetSigned(w, "sessionId", id, 86400); err != nil {
//		return err
//	}
//	id, err := m.GetSigned(r, "sessionId")
//
// [Manager.All] exposes the whole request jar as a map for request projections.
package cookie
