package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// SessionCookieName is the cookie carrying the signed session id.
const SessionCookieName = "campusnotes_session"

// SignSessionID produces the cookie value "<id>.<mac>" so a tampered or
// fabricated id fails verification before the store is ever consulted.
func SignSessionID(secret, id string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return id + "." + sig
}

// VerifySessionID checks the cookie value's signature and returns the raw id.
func VerifySessionID(secret, value string) (string, bool) {
	id, sig, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	expected, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	if !hmac.Equal(expected, mac.Sum(nil)) {
		return "", false
	}
	return id, true
}
