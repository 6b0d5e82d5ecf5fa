// Package jwt provides functions for creating and verifying the gateway's JSON Web Tokens (JWTs).

package jwt

import (
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jose "gopkg.in/square/go-jose.v2"
)

const DefaultTTL = time.Hour

type JWTParams struct {
	Subject string
	Admin   bool
	TTL     time.Duration
}

// Reads and parses the JWKS file
func loadJWKS(jwksPath string) (jose.JSONWebKeySet, error) {
	var jwks jose.JSONWebKeySet
	if _, err := os.Stat(jwksPath); err != nil {
		return jwks, fmt.Errorf("Invalid JWKS_PATH: %w", err)
	}

	data, err := os.ReadFile(jwksPath)
	if err != nil {
		return jwks, fmt.Errorf("Failed to read JWKS file: %w", err)
	}
	if err := json.Unmarshal(data, &jwks); err != nil {
		return jwks, fmt.Errorf("Failed to unmarshal JWKS file: %w", err)
	}
	if len(jwks.Keys) == 0 {
		return jwks, fmt.Errorf("No keys found in JWKS")
	}
	return jwks, nil
}

// Creates a JWT signed with the private key. The first key in the JWKS is
// assumed to be the latest one and names the token's kid.
func CreateJWT(params JWTParams, privateKeyBytes []byte, jwksPath string) (string, error) {
	jwks, err := loadJWKS(jwksPath)
	if err != nil {
		return "", err
	}
	if params.TTL == 0 {
		params.TTL = DefaultTTL
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   params.Subject,
		"iat":   now.Unix(),
		"exp":   now.Add(params.TTL).Unix(),
		"admin": params.Admin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = jwks.Keys[0].KeyID

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyBytes)
	if err != nil {
		return "", err
	}

	signed, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Validates a JWT against the JWKS
func ValidateJWT(rawToken string, jwksPath string) (*jwt.Token, error) {
	jwks, err := loadJWKS(jwksPath)
	if err != nil {
		return nil, err
	}

	parserFunc := func(token *jwt.Token) (interface{}, error) {
		kidVal, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("Missing/invalid kid value")
		}

		keyMatches := jwks.Key(kidVal)
		if len(keyMatches) == 0 {
			return nil, fmt.Errorf("No key for kid %q", kidVal)
		}

		pub, ok := keyMatches[0].Key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("Invalid key type for kid %q. Expected RSA.", kidVal)
		}
		return pub, nil
	}

	return jwt.Parse(rawToken, parserFunc, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
}

// Reports whether the validated token carries the admin claim
func IsAdmin(token *jwt.Token) bool {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	admin, ok := claims["admin"].(bool)
	return ok && admin
}
