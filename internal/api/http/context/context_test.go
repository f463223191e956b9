package context

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contabildrive/drive-server/internal/model"
)

func TestPrincipalRoundTrip(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	p := model.Principal{
		UserID:   uuid.New(),
		Role:     model.RoleClient,
		ClientID: &clientID,
		CNPJ:     "12345678000199",
	}

	ctx := WithPrincipal(context.Background(), p)
	got, ok := PrincipalFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, p, got)
}

func TestPrincipalFromContext_Missing(t *testing.T) {
	t.Parallel()

	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)
}
