package auth

import (
	"errors"
	"time"

	"docscabinet/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity carried by a token. The claim
// field names are the wire contract with the client.
type Principal struct {
	UserID    int64  `json:"userId"`
	RoleID    int64  `json:"roleId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Claims struct {
	Principal
	jwt.RegisteredClaims
}

// Issuer both signs and verifies identity tokens. The signing secret and
// token lifetime are injected at construction; the clock is overridable
// for tests.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token embedding p, expiring ttl after issuance.
func (i *Issuer) Issue(p Principal) (string, error) {
	now := i.now()
	claims := Claims{
		Principal: p,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.Server, err)
	}
	return signed, nil
}

// Authenticate verifies an incoming token string and yields the embedded
// principal. Validity depends only on the signature and expiry; the server
// keeps no session state.
func (i *Issuer) Authenticate(tokenStr string) (Principal, error) {
	if tokenStr == "" {
		return Principal{}, apperr.New(apperr.MissingToken)
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, apperr.Wrap(apperr.ExpiredToken, err)
		}
		return Principal{}, apperr.Wrap(apperr.InvalidToken, err)
	}

	return claims.Principal, nil
}
