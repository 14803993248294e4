package vpagateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// APIKey is a credential a client exchanges for a bearer token at
// POST /v1/tokens. Secret is never stored; only its bcrypt hash is kept.
type APIKey struct {
	ID           uuid.UUID
	Name         string
	HashedSecret []byte
}

type authCtxKey int

const authKeyID authCtxKey = iota

// issuer is the value placed in the "iss" claim of every token this gateway
// mints, and the only issuer it will accept on verification.
const issuer = "vpagen-gateway"

// generateToken mints a bearer token for the given key. The signing key is
// derived from the gateway secret and the key's hashed secret, so replacing
// an API key's secret (and therefore its hash) invalidates every token
// issued under the old one without needing a revocation list.
func generateToken(gatewaySecret []byte, key APIKey) (string, error) {
	claims := jwt.MapClaims{
		"iss": issuer,
		"sub": key.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(signingKey(gatewaySecret, key))
}

func signingKey(gatewaySecret []byte, key APIKey) []byte {
	sk := make([]byte, 0, len(gatewaySecret)+len(key.HashedSecret))
	sk = append(sk, gatewaySecret...)
	sk = append(sk, key.HashedSecret...)
	return sk
}

// authenticate verifies the Bearer token on req and returns the ID of the API
// key it was issued to.
func (gw *Gateway) authenticate(req *http.Request) (uuid.UUID, error) {
	tokStr, err := bearerToken(req)
	if err != nil {
		return uuid.UUID{}, err
	}

	var keyID uuid.UUID
	_, err = jwt.Parse(tokStr, func(t *jwt.Token) (interface{}, error) {
		subj, err := t.Claims.GetSubject()
		if err != nil {
			return nil, fmt.Errorf("cannot get subject: %w", err)
		}
		keyID, err = uuid.Parse(subj)
		if err != nil {
			return nil, fmt.Errorf("cannot parse subject: %w", err)
		}

		gw.mu.RLock()
		key, ok := gw.keys[keyID]
		gw.mu.RUnlock()
		if !ok {
			return nil, fmt.Errorf("subject does not exist")
		}

		return signingKey(gw.secret, key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer), jwt.WithLeeway(time.Minute))
	if err != nil {
		return uuid.UUID{}, err
	}

	return keyID, nil
}

func bearerToken(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "bearer") {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return strings.TrimSpace(parts[1]), nil
}

// requireAuth is chi middleware that rejects any request without a valid
// bearer token, placing the authenticated key's ID in the request context.
func (gw *Gateway) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		keyID, err := gw.authenticate(req)
		if err != nil {
			time.Sleep(gw.unauthDelay)
			jsonUnauthorized("", err.Error()).write(w, req)
			return
		}

		ctx := context.WithValue(req.Context(), authKeyID, keyID)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// authenticatedKey returns the ID of the API key that requireAuth verified
// for req, as placed in its context.
func authenticatedKey(req *http.Request) (uuid.UUID, bool) {
	keyID, ok := req.Context().Value(authKeyID).(uuid.UUID)
	return keyID, ok
}

// checkSecret reports whether plaintext matches key's stored hash.
func checkSecret(key APIKey, plaintext string) bool {
	return bcrypt.CompareHashAndPassword(key.HashedSecret, []byte(plaintext)) == nil
}

// HashSecret bcrypt-hashes a plaintext API key secret for storage in an
// APIKey. Callers provision keys with this before registering them with a
// Gateway.
func HashSecret(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
}
