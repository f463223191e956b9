//go:build integration

package postgres_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/contabildrive/drive-server/internal/model"
	repo "github.com/contabildrive/drive-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "drive_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/drive_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func hashSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	clients := repo.NewClientRepository(conn)
	folders := repo.NewFolderRepository(conn)
	files := repo.NewFileRepository(conn)
	audit := repo.NewAuditRepository(conn)

	t.Run("user_repository", func(t *testing.T) {
		has, err := users.HasAdmin(ctx)
		require.NoError(t, err)
		require.False(t, has)

		admin, err := users.CreateAdmin(ctx, model.User{
			Email:        "admin@example.com",
			PasswordHash: "$argon2id$stub",
			IsActive:     true,
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, admin.ID)

		has, err = users.HasAdmin(ctx)
		require.NoError(t, err)
		require.True(t, has)

		// E-mail lookup is case-insensitive.
		got, err := users.GetAdminByEmail(ctx, "Admin@Example.COM")
		require.NoError(t, err)
		require.Equal(t, admin.ID, got.ID)
		require.Nil(t, got.LastLoginAt)

		require.NoError(t, users.TouchLastLogin(ctx, admin.ID))
		got, err = users.GetAdminByEmail(ctx, "admin@example.com")
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)

		_, err = users.GetAdminByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("client_repository", func(t *testing.T) {
		created, err := clients.CreateWithUser(ctx,
			model.Client{CNPJ: "12345678000199", Name: "Acme Contabilidade", IsActive: true},
			model.User{Role: model.RoleClient, CNPJ: "12345678000199", PasswordHash: "$argon2id$stub", IsActive: true},
		)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)
		require.NotEqual(t, uuid.Nil, created.UserID)

		byCNPJ, err := clients.GetByCNPJ(ctx, "12345678000199")
		require.NoError(t, err)
		require.Equal(t, created.ID, byCNPJ.ID)

		login, err := users.GetClientLoginByCNPJ(ctx, "12345678000199")
		require.NoError(t, err)
		require.Equal(t, created.UserID, login.UserID)
		require.True(t, login.UserActive)

		list, err := clients.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)

		// Deactivation flips the login user too.
		inactive := false
		require.NoError(t, clients.Update(ctx, created.ID, model.ClientUpdate{IsActive: &inactive}))

		status, err := users.GetSubjectStatus(ctx, created.UserID)
		require.NoError(t, err)
		require.False(t, status.IsActive)
		require.False(t, status.ClientActive)
		require.NotNil(t, status.ClientID)
		require.Equal(t, created.ID, *status.ClientID)

		name := "Acme Renamed"
		active := true
		require.NoError(t, clients.Update(ctx, created.ID, model.ClientUpdate{Name: &name, IsActive: &active}))
		got, err := clients.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Acme Renamed", got.Name)
		require.True(t, got.IsActive)

		require.NoError(t, clients.Update(ctx, uuid.New(), model.ClientUpdate{Name: &name}))
	})

	t.Run("folder_and_file_repositories", func(t *testing.T) {
		owner, err := clients.GetByCNPJ(ctx, "12345678000199")
		require.NoError(t, err)

		root, err := folders.Create(ctx, model.Folder{ClientID: owner.ID, Name: "Fiscal"})
		require.NoError(t, err)
		child, err := folders.Create(ctx, model.Folder{ClientID: owner.ID, ParentID: &root.ID, Name: "2026"})
		require.NoError(t, err)

		roots, err := folders.ListByParent(ctx, owner.ID, nil)
		require.NoError(t, err)
		require.Len(t, roots, 1)
		require.Equal(t, root.ID, roots[0].ID)

		children, err := folders.ListByParent(ctx, owner.ID, &root.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		require.Equal(t, child.ID, children[0].ID)

		f, err := files.Create(ctx, model.FileObject{
			ClientID:         owner.ID,
			FolderID:         child.ID,
			OriginalFilename: "darf.pdf",
			StorageKey:       fmt.Sprintf("clients/%s/%s/darf.pdf", owner.ID, uuid.New()),
			ContentType:      "application/pdf",
			SizeBytes:        1024,
			SHA256Hex:        hashSecret("payload"),
		})
		require.NoError(t, err)

		inFolder, err := files.ListByFolder(ctx, owner.ID, child.ID)
		require.NoError(t, err)
		require.Len(t, inFolder, 1)

		scoped, err := files.GetByIDForClient(ctx, f.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, f.StorageKey, scoped.StorageKey)

		_, err = files.GetByIDForClient(ctx, f.ID, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)

		require.NoError(t, files.SoftDelete(ctx, f.ID))
		_, err = files.GetByID(ctx, f.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
		require.ErrorIs(t, files.SoftDelete(ctx, f.ID), model.ErrNotFound)
	})

	t.Run("audit_repository", func(t *testing.T) {
		admin, err := users.GetAdminByEmail(ctx, "admin@example.com")
		require.NoError(t, err)

		require.NoError(t, audit.Append(ctx, model.AuditEntry{
			ID:          ulid.Make().String(),
			ActorUserID: admin.ID,
			Action:      model.AuditActionCreate,
			Entity:      "client",
			EntityID:    uuid.NewString(),
			Meta:        []byte(`{"name":"Acme"}`),
			IP:          "203.0.113.7",
			UserAgent:   "integration-test",
		}))
	})
}

func TestRefreshTokenRepository_RotationChain(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	tokens := repo.NewRefreshTokenRepository(conn)

	admin, err := users.CreateAdmin(ctx, model.User{
		Email:        "rotation@example.com",
		PasswordHash: "$argon2id$stub",
		IsActive:     true,
	})
	require.NoError(t, err)

	first := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    admin.ID,
		TokenHash: hashSecret("secret-0"),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
		ClientIP:  "203.0.113.7",
		UserAgent: "integration-test",
	}
	require.NoError(t, tokens.Create(ctx, first))

	next := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    admin.ID,
		TokenHash: hashSecret("secret-1"),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tokens.Rotate(ctx, first.ID, next))

	// Predecessor is revoked and linked forward.
	old, err := tokens.GetByHash(ctx, first.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, old.RevokedAt)
	require.NotNil(t, old.ReplacedBy)
	require.Equal(t, next.ID, *old.ReplacedBy)

	// Rotating the revoked predecessor again is a replay.
	err = tokens.Rotate(ctx, first.ID, model.RefreshToken{
		ID:        uuid.New(),
		UserID:    admin.ID,
		TokenHash: hashSecret("secret-replay"),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.ErrorIs(t, err, model.ErrRefreshRevoked)

	_, err = tokens.GetByHash(ctx, hashSecret("no-such-secret"))
	require.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, tokens.RevokeAllByUser(ctx, admin.ID))
	latest, err := tokens.GetByHash(ctx, next.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, latest.RevokedAt)
}

func TestRefreshTokenRepository_ConcurrentRotation_OneWinner(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	tokens := repo.NewRefreshTokenRepository(conn)

	admin, err := users.CreateAdmin(ctx, model.User{
		Email:        "race@example.com",
		PasswordHash: "$argon2id$stub",
		IsActive:     true,
	})
	require.NoError(t, err)

	victim := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    admin.ID,
		TokenHash: hashSecret("race-secret"),
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, tokens.Create(ctx, victim))

	const attempts = 16
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = tokens.Rotate(ctx, victim.ID, model.RefreshToken{
				ID:        uuid.New(),
				UserID:    admin.ID,
				TokenHash: hashSecret(fmt.Sprintf("race-next-%d", i)),
				IssuedAt:  time.Now(),
				ExpiresAt: time.Now().Add(time.Hour),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		require.ErrorIs(t, err, model.ErrRefreshRevoked)
	}
	require.Equal(t, 1, winners, "exactly one concurrent rotation must commit")

	old, err := tokens.GetByHash(ctx, victim.TokenHash)
	require.NoError(t, err)
	require.NotNil(t, old.RevokedAt)
	require.NotNil(t, old.ReplacedBy)
}
