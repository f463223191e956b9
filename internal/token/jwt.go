package token

import (
	"crypto/rsa"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/contabildrive/drive-server/internal/model"
)

const (
	issuer   = "contabil-drive"
	audience = "contabil-drive-api"
)

// Claims carried by access tokens.
type Claims struct {
	jwt.RegisteredClaims
	Role     string `json:"role"`
	ClientID string `json:"client_id,omitempty"`
	CNPJ     string `json:"cnpj,omitempty"`
}

// RS256 implements model.TokenManager with asymmetric signing: the
// private key signs, the public key verifies, so a verifying service
// never needs signing capability. Key material is parsed once per process
// and never logged.
type RS256 struct {
	privatePEM string
	publicPEM  string
	accessTTL  time.Duration

	once       sync.Once
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	keyErr     error
}

var _ model.TokenManager = (*RS256)(nil)

// NewRS256 creates a token manager from PEM-encoded keys. Keys are parsed
// lazily on first use and cached for the process lifetime.
func NewRS256(privatePEM, publicPEM string, accessTTL time.Duration) *RS256 {
	return &RS256{privatePEM: privatePEM, publicPEM: publicPEM, accessTTL: accessTTL}
}

func (m *RS256) keys() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	m.once.Do(func() {
		priv, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalizePEM(m.privatePEM)))
		if err != nil {
			m.keyErr = fmt.Errorf("failed to parse signing key: %w", err)
			return
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(normalizePEM(m.publicPEM)))
		if err != nil {
			m.keyErr = fmt.Errorf("failed to parse verification key: %w", err)
			return
		}
		m.privateKey = priv
		m.publicKey = pub
	})
	return m.privateKey, m.publicKey, m.keyErr
}

// GenerateAccessToken mints a short-lived signed token for the principal.
func (m *RS256) GenerateAccessToken(principal model.Principal) (string, error) {
	priv, _, err := m.keys()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   principal.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			ID:        uuid.NewString(),
		},
		Role: string(principal.Role),
		CNPJ: principal.CNPJ,
	}
	if principal.ClientID != nil {
		claims.ClientID = principal.ClientID.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(priv)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccessToken verifies signature, issuer, audience and expiry, and
// rebuilds the principal from the claims. Every failure mode collapses to
// model.ErrInvalidToken; the underlying cause stays in the wrapped error
// for logging only.
func (m *RS256) ParseAccessToken(tokenString string) (model.Principal, error) {
	_, pub, err := m.keys()
	if err != nil {
		return model.Principal{}, err
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return pub, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return model.Principal{}, model.ErrInvalidToken
	}

	return principalFromClaims(claims)
}

func principalFromClaims(claims *Claims) (model.Principal, error) {
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: bad subject", model.ErrInvalidToken)
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.Principal{}, fmt.Errorf("%w: bad role", model.ErrInvalidToken)
	}

	principal := model.Principal{
		UserID: userID,
		Role:   role,
		CNPJ:   claims.CNPJ,
	}
	if claims.ClientID != "" {
		clientID, err := uuid.Parse(claims.ClientID)
		if err != nil {
			return model.Principal{}, fmt.Errorf("%w: bad client id", model.ErrInvalidToken)
		}
		principal.ClientID = &clientID
	}

	return principal, nil
}

// normalizePEM accepts keys supplied through env vars with literal "\n"
// escapes in place of newlines.
func normalizePEM(pem string) string {
	if strings.Contains(pem, `\n`) {
		return strings.ReplaceAll(pem, `\n`, "\n")
	}
	return pem
}
