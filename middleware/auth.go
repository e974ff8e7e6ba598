// middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"strings"

	"rentwatch/utils"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// Caller is the verified identity behind a request.
type Caller struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Authenticator verifies a bearer token.
type Authenticator interface {
	Verify(ctx context.Context, token string) (*Caller, error)
}

// IDTokenVerifier is the part of *auth.Client the middleware uses.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthenticator accepts Firebase ID tokens.
type FirebaseAuthenticator struct {
	Client IDTokenVerifier
}

func (a *FirebaseAuthenticator) Verify(ctx context.Context, token string) (*Caller, error) {
	if a.Client == nil {
		return nil, errors.New("firebase auth client not configured")
	}
	t, err := a.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}
	claim := func(name string) string {
		s, _ := t.Claims[name].(string)
		return s
	}
	return &Caller{UID: t.UID, Email: claim("email"), Name: claim("name"), Picture: claim("picture")}, nil
}

// JWTAuthenticator accepts HS256 tokens signed with a shared secret, for
// service callers without a Firebase account.
type JWTAuthenticator struct {
	Secret []byte
}

func (a *JWTAuthenticator) Verify(_ context.Context, token string) (*Caller, error) {
	uid, err := utils.ExtractIDFromToken(a.Secret, token)
	if err != nil {
		return nil, err
	}
	return &Caller{UID: uid}, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller in the context.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteError(c, utils.Unauthenticated("User must be authenticated"))
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.WriteError(c, utils.Unauthenticated("User must be authenticated"))
			return
		}

		caller, err := authn.Verify(c.Request.Context(), tokenString)
		if err != nil || caller == nil || caller.UID == "" {
			utils.WriteError(c, utils.Unauthenticated("Invalid or expired token"))
			return
		}

		c.Set(callerKey, caller)
		c.Set("userID", caller.UID)
		c.Next()
	}
}

// CallerFrom returns the caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (*Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil, false
	}
	caller, ok := v.(*Caller)
	return caller, ok && caller != nil
}
