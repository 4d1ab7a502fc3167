package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveKeys(t *testing.T, keys map[string]*rsa.PublicKey) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32

	set := keySet{}
	for kid, pub := range keys {
		set.Keys = append(set.Keys, jsonWebKey{
			Kid: kid,
			Kty: "RSA",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		})
	}
	set.Keys = append(set.Keys, jsonWebKey{Kid: "enc-key", Kty: "EC", Use: "enc"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestProvider_VerifiesRS256Token(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, _ := serveKeys(t, map[string]*rsa.PublicKey{"k1": &priv.PublicKey})

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tok.Header["kid"] = "k1"
	signed, err := tok.SignedString(priv)
	require.NoError(t, err)

	p := NewProvider(srv.URL)
	parsed, err := jwt.Parse(signed, p.KeyFunc)

	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestProvider_UnknownKidRefreshesOncePerInterval(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv, hits := serveKeys(t, map[string]*rsa.PublicKey{"k1": &priv.PublicKey})

	p := NewProvider(srv.URL)
	ctx := context.Background()

	_, err = p.Key(ctx, "k1")
	require.NoError(t, err)

	_, err = p.Key(ctx, "rotated")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = p.Key(ctx, "enc-key")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestProvider_RejectsHMACTokens(t *testing.T) {
	p := NewProvider("http://unused.invalid")
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})

	_, err := p.KeyFunc(tok)

	assert.Error(t, err)
}

func TestProvider_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewProvider(srv.URL).Key(context.Background(), "k1")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
