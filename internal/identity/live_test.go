package identity

import (
	"context"
	"testing"

	"togetherbikes/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLiveGateway(t *testing.T) Gateway {
	t.Helper()
	return NewLiveGateway(repository.NewMemoryUserRepository(), repository.NewMemorySessionTokenRepository(),
		"test-secret", 60, zap.NewNop())
}

func TestLiveGatewayTokenRoundTrip(t *testing.T) {
	g := newLiveGateway(t)
	ctx := context.Background()

	sess, err := g.SignUp(ctx, "profile-1", "rider@example.com", "secret123", Profile{FullName: "Test Rider"})
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	resolved, err := g.Session(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, resolved.User.ID)
	assert.Equal(t, "rider@example.com", resolved.User.Email)
	assert.Empty(t, resolved.User.PasswordHash == "secret123", "password must never be stored in plaintext")
}

func TestLiveGatewayRejectsForgedToken(t *testing.T) {
	g := newLiveGateway(t)
	ctx := context.Background()

	_, err := g.Session(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with a different secret is rejected
	other := NewLiveGateway(repository.NewMemoryUserRepository(), repository.NewMemorySessionTokenRepository(),
		"other-secret", 60, zap.NewNop())
	sess, err := other.SignUp(ctx, "profile-1", "rider@example.com", "secret123", Profile{})
	require.NoError(t, err)

	_, err = g.Session(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLiveGatewaySignOutInvalidatesToken(t *testing.T) {
	g := newLiveGateway(t)
	ctx := context.Background()

	sess, err := g.SignUp(ctx, "profile-1", "rider@example.com", "secret123", Profile{})
	require.NoError(t, err)

	_, err = g.Session(ctx, sess.Token)
	require.NoError(t, err)

	require.NoError(t, g.SignOut(ctx, "profile-1", sess.Token))

	// The token is signed and unexpired but must no longer resolve.
	_, err = g.Session(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Signing out twice with the same token is not an error.
	require.NoError(t, g.SignOut(ctx, "profile-1", sess.Token))

	// A fresh sign-in issues a new, working token.
	fresh, err := g.SignIn(ctx, "profile-1", "rider@example.com", "secret123")
	require.NoError(t, err)
	_, err = g.Session(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestLiveGatewayDuplicateSignUp(t *testing.T) {
	g := newLiveGateway(t)
	ctx := context.Background()

	_, err := g.SignUp(ctx, "profile-1", "rider@example.com", "secret123", Profile{})
	require.NoError(t, err)

	_, err = g.SignUp(ctx, "profile-1", "rider@example.com", "different", Profile{})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLiveGatewaySignInVerifiesPassword(t *testing.T) {
	g := newLiveGateway(t)
	ctx := context.Background()

	_, err := g.SignUp(ctx, "profile-1", "rider@example.com", "secret123", Profile{})
	require.NoError(t, err)

	_, err = g.SignIn(ctx, "profile-1", "rider@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	sess, err := g.SignIn(ctx, "profile-1", "rider@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
}
