package token

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabildrive/drive-server/internal/model"
)

func testKeyPair(t *testing.T) (privatePEM, publicPEM string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	privatePEM = string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER}))
	publicPEM = string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER}))
	return privatePEM, publicPEM
}

func TestRS256_RoundTrip_Admin(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	m := NewRS256(priv, pub, 15*time.Minute)

	principal := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	signed, err := m.GenerateAccessToken(principal)
	require.NoError(t, err)

	got, err := m.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, got.UserID)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Nil(t, got.ClientID)
	assert.Empty(t, got.CNPJ)
}

func TestRS256_RoundTrip_Client(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	m := NewRS256(priv, pub, 15*time.Minute)

	clientID := uuid.New()
	principal := model.Principal{
		UserID:   uuid.New(),
		Role:     model.RoleClient,
		ClientID: &clientID,
		CNPJ:     "12345678000199",
	}

	signed, err := m.GenerateAccessToken(principal)
	require.NoError(t, err)

	got, err := m.ParseAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, got.UserID)
	assert.Equal(t, model.RoleClient, got.Role)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, clientID, *got.ClientID)
	assert.Equal(t, "12345678000199", got.CNPJ)
}

func TestRS256_Expired(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	m := NewRS256(priv, pub, -time.Second)

	signed, err := m.GenerateAccessToken(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(signed)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRS256_Tampered(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	m := NewRS256(priv, pub, 15*time.Minute)

	signed, err := m.GenerateAccessToken(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	// Flip a byte inside the payload segment.
	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	if payload[5] == 'A' {
		payload[5] = 'B'
	} else {
		payload[5] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = m.ParseAccessToken(tampered)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRS256_WrongKey(t *testing.T) {
	t.Parallel()

	privA, pubA := testKeyPair(t)
	privB, _ := testKeyPair(t)

	signer := NewRS256(privB, pubA, 15*time.Minute)
	verifier := NewRS256(privA, pubA, 15*time.Minute)

	signed, err := signer.GenerateAccessToken(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(signed)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestRS256_Garbage(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	m := NewRS256(priv, pub, 15*time.Minute)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.ParseAccessToken(tok)
		assert.ErrorIs(t, err, model.ErrInvalidToken)
	}
}

func TestRS256_EscapedNewlinesInPEM(t *testing.T) {
	t.Parallel()

	priv, pub := testKeyPair(t)
	escapedPriv := strings.ReplaceAll(priv, "\n", `\n`)
	escapedPub := strings.ReplaceAll(pub, "\n", `\n`)

	m := NewRS256(escapedPriv, escapedPub, 15*time.Minute)

	signed, err := m.GenerateAccessToken(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = m.ParseAccessToken(signed)
	assert.NoError(t, err)
}

func TestRS256_BadKeys(t *testing.T) {
	t.Parallel()

	m := NewRS256("garbage", "garbage", 15*time.Minute)

	_, err := m.GenerateAccessToken(model.Principal{UserID: uuid.New(), Role: model.RoleAdmin})
	assert.Error(t, err)
}
