// Package auth resolves the identity provider's RSA signing keys for bearer
// token verification.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"talent-onboarding-backend/pkg/logger"
	"talent-onboarding-backend/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
)

// ErrKeyNotFound is returned when no signing key matches a token's kid,
// even after a refresh.
var ErrKeyNotFound = errors.New("auth: signing key not found")

const (
	minRefreshInterval = time.Minute
	fetchTimeout       = 5 * time.Second
)

type keySet struct {
	Keys []jsonWebKey `json:"keys"`
}

type jsonWebKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// Provider caches RSA public keys by kid. Unknown kids trigger a refresh,
// at most once per minute.
type Provider struct {
	url        string
	httpClient *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	refreshed time.Time
}

func NewProvider(jwksURL string) *Provider {
	return &Provider{
		url:        jwksURL,
		httpClient: &http.Client{Timeout: fetchTimeout},
		keys:       make(map[string]*rsa.PublicKey),
	}
}

// KeyFunc is a jwt.Keyfunc for RS256 tokens carrying a kid header.
func (p *Provider) KeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, errors.New("kid header not found")
	}

	return p.Key(context.Background(), kid)
}

// Key returns the public key for kid, refreshing the set when it is unknown.
func (p *Provider) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	if key, ok := p.lookup(kid); ok {
		return key, nil
	}

	if err := p.refresh(ctx); err != nil {
		return nil, err
	}

	if key, ok := p.lookup(kid); ok {
		return key, nil
	}
	return nil, ErrKeyNotFound
}

func (p *Provider) lookup(kid string) (*rsa.PublicKey, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	key, ok := p.keys[kid]
	return key, ok
}

func (p *Provider) refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.refreshed) < minRefreshInterval && len(p.keys) > 0 {
		return nil
	}

	keys, err := p.fetch(ctx)
	if err != nil {
		metrics.JWKSRefreshes.WithLabelValues("error").Inc()
		logger.Log.Warn("JWKS refresh failed", "url", p.url, "error", err)
		return err
	}
	metrics.JWKSRefreshes.WithLabelValues("ok").Inc()

	p.keys = keys
	p.refreshed = time.Now()
	return nil
}

func (p *Provider) fetch(ctx context.Context) (map[string]*rsa.PublicKey, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth: jwks endpoint returned %d", resp.StatusCode)
	}

	var set keySet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("auth: decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.publicKey()
		if err != nil {
			logger.Log.Warn("Skipping malformed JWKS key", "kid", k.Kid, "error", err)
			continue
		}
		keys[k.Kid] = pub
	}
	return keys, nil
}

func (k jsonWebKey) publicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, err
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, err
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e == 0 {
		return nil, errors.New("zero exponent")
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
