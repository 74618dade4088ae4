package auth_test

import (
	"context"
	"testing"

	auth "github.com/FernandoDopazo/checkout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	identity, _ := args.Get(0).(auth.Identity)
	return identity, args.Error(1)
}

type stubIdentity struct {
	id    string
	name  string
	email string
}

func (s stubIdentity) ID() string    { return s.id }
func (s stubIdentity) Name() string  { return s.name }
func (s stubIdentity) Email() string { return s.email }

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig{signingKey: "test-signing-key"}

	t.Run("issues token for valid credentials", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "hunter2").
			Return(stubIdentity{id: "user-123", name: "Ann", email: "a@x.com"}, nil).Once()

		auther := auth.NewAuthenticator(provider, cfg)

		token, err := auther.Login(ctx, "a@x.com", "hunter2")

		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// The freshly issued token must validate against the same service
		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", session.GetUserID())
		assert.Equal(t, "a@x.com", session.GetUserEmail())
		provider.AssertExpectations(t)
	})

	t.Run("propagates verification failures", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "wrong").
			Return(nil, auth.ErrMismatchedHashAndPassword).Once()

		auther := auth.NewAuthenticator(provider, cfg)

		token, err := auther.Login(ctx, "a@x.com", "wrong")

		assert.Empty(t, token)
		assert.Equal(t, auth.ErrMismatchedHashAndPassword, err)
		provider.AssertExpectations(t)
	})

	t.Run("unknown user propagates identity not found", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "nobody@x.com", "hunter2").
			Return(nil, auth.ErrIdentityNotFound).Once()

		auther := auth.NewAuthenticator(provider, cfg)

		token, err := auther.Login(ctx, "nobody@x.com", "hunter2")

		assert.Empty(t, token)
		assert.Equal(t, auth.ErrIdentityNotFound, err)
		provider.AssertExpectations(t)
	})
}

func TestAuther_SessionFromToken(t *testing.T) {
	cfg := testConfig{signingKey: "test-signing-key"}

	t.Run("rejects garbage tokens", func(t *testing.T) {
		auther := auth.NewAuthenticator(&MockIdentityProvider{}, cfg)

		session, err := auther.SessionFromToken("garbage")

		assert.Error(t, err)
		assert.Nil(t, session)
		assert.True(t, auth.IsMalformedError(err))
	})
}

func TestAuther_IdentityFromSession(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig{signingKey: "test-signing-key"}

	provider := &MockIdentityProvider{}
	provider.On("FindIdentityByIdentifier", ctx, "a@x.com").
		Return(stubIdentity{id: "user-123", email: "a@x.com"}, nil).Once()

	auther := auth.NewAuthenticator(provider, cfg)

	session := &auth.SessionObject{UserID: "user-123", UserEmail: "a@x.com"}

	identity, err := auther.IdentityFromSession(ctx, session)

	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.ID())
	provider.AssertExpectations(t)
}
