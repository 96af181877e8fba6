package auth

import (
	"net/mail"
	"strings"

	"docscabinet/internal/apperr"
)

// ValidateLogin checks the raw login input shape before any persistence
// lookup. Checks run in a fixed order and the first failure wins.
func ValidateLogin(username, password string) error {
	switch {
	case username == "" && password == "":
		return apperr.New(apperr.MissingLoginDetails)
	case username == "":
		return apperr.New(apperr.MissingUsername)
	case password == "":
		return apperr.New(apperr.MissingPassword)
	case !ValidEmail(username):
		return apperr.New(apperr.InvalidUsername)
	}
	return nil
}

// ValidEmail reports whether s is a plain, syntactically valid email
// address. The domain must contain a dot, so "foo@example" is rejected
// even though RFC 5322 allows it.
func ValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return strings.Contains(s[at+1:], ".")
}
