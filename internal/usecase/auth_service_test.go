package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestAuthService_SignupStartsSession(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()

	u, err := env.auth.Signup(ctx, SignupInput{Name: " Ada ", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "ada", u.Username)
	require.Equal(t, "u_1", u.ID)

	current, err := env.auth.CurrentPrincipal(ctx)
	require.NoError(t, err)
	require.Equal(t, u.ID, current.UserID)
	require.False(t, current.Anonymous())
}

func TestAuthService_SignupRejectsDuplicateAndInvalid(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	env.signup(t, "Ada", "ada@example.com")

	_, err := env.auth.Signup(ctx, SignupInput{Name: "Other", Email: "ada@example.com", Password: "secret123"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	cases := []SignupInput{
		{Name: "", Email: "x@example.com", Password: "secret123"},
		{Name: "X", Email: "not-an-email", Password: "secret123"},
		{Name: "X", Email: "x@example.com", Password: "123"},
	}
	for _, in := range cases {
		if _, err := env.auth.Signup(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", in, err)
		}
	}
}

func TestAuthService_LoginLogout(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	ctx := context.Background()
	p := env.signup(t, "Ada", "ada@example.com")
	require.NoError(t, env.auth.Logout(ctx))

	current, err := env.auth.CurrentPrincipal(ctx)
	require.NoError(t, err)
	require.True(t, current.Anonymous())

	_, err = env.auth.Login(ctx, LoginInput{Email: "ada@example.com", Password: "wrong-password"})
	require.ErrorIs(t, err, ErrUnauthorized)
	_, err = env.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, ErrUnauthorized)

	u, err := env.auth.Login(ctx, LoginInput{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, p.UserID, u.ID)

	current, err = env.auth.CurrentPrincipal(ctx)
	require.NoError(t, err)
	require.Equal(t, p.UserID, current.UserID)
}

func TestAuthService_StorageUnavailable(t *testing.T) {
	env := newTestEnv(t, DefaultDraftConfig())
	env.store.SetDisabled(true)

	_, err := env.auth.Signup(context.Background(), SignupInput{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	current, err := env.auth.CurrentPrincipal(context.Background())
	require.NoError(t, err)
	require.True(t, current.Anonymous())
}
