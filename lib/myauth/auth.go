package myauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/webshop/storefront/lib/myerrors"
	"github.com/webshop/storefront/lib/myhttp"
	"github.com/webshop/storefront/lib/mylog"
	"github.com/webshop/storefront/lib/mytime"
)

const (
	RoleShopper = "shopper"
	RoleAdmin   = "admin"
)

type ctxSessionKey struct{}

type Session struct {
	UID         string
	Role        string
	BearerToken string
}

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Auth struct {
	secret []byte
	nower  mytime.Nower
	logger mylog.Logger
}

func New(secret string, nower mytime.Nower) *Auth {
	return &Auth{
		secret: []byte(secret),
		nower:  nower,
		logger: mylog.New("auth"),
	}
}

func (a *Auth) IssueToken(uid string, role string, ttl time.Duration) (string, error) {
	now := a.nower.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("error signing token: %s", err)
	}

	return signed, nil
}

func (a *Auth) ParseToken(raw string) (Session, error) {
	claims := sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Method.Alg())
		}
		return a.secret, nil
	})
	if err != nil {
		return Session{}, myerrors.NewAuthenticationError(fmt.Errorf("invalid token: %s", err))
	}

	return Session{
		UID:         claims.Subject,
		Role:        claims.Role,
		BearerToken: raw,
	}, nil
}

// Require wraps a handler and rejects requests without a valid bearer
// token carrying the wanted role.
func (a *Auth) Require(role string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := r.Context()
		errorWriter := myhttp.NewWriter(a.logger)

		raw := bearerFromRequest(r)
		if raw == "" {
			errorWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("missing credential")))
			return
		}

		session, err := a.ParseToken(raw)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if session.Role != role {
			errorWriter.WriteError(c, w, 1, myerrors.NewAuthenticationError(fmt.Errorf("wrong role")))
			return
		}

		next(w, r.WithContext(context.WithValue(c, ctxSessionKey{}, session)))
	}
}

func bearerFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func SessionFromContext(c context.Context) (Session, bool) {
	session, ok := c.Value(ctxSessionKey{}).(Session)
	return session, ok
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %s", err)
	}
	return string(hash), nil
}

func VerifyPassword(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
