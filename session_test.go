package auth_test

import (
	"testing"
	"time"

	auth "github.com/FernandoDopazo/checkout"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionObject(t *testing.T) {
	userID := uuid.New().String()
	now := time.Now()
	exp := now.Add(time.Hour)

	session := &auth.SessionObject{
		UserID:         userID,
		UserEmail:      "a@x.com",
		Audience:       []string{"app:user"},
		Issuer:         "test-issuer",
		IssuedAt:       &now,
		ExpirationDate: &exp,
	}

	assert.Equal(t, userID, session.GetUserID())
	assert.Equal(t, "a@x.com", session.GetUserEmail())
	assert.Equal(t, []string{"app:user"}, session.GetAudience())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, &now, session.GetIssuedAt())
	assert.Equal(t, &exp, session.GetExpiration())

	userUUID, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, userUUID.String())

	stringRep := session.String()
	assert.Contains(t, stringRep, userID)
	assert.Contains(t, stringRep, "a@x.com")
	assert.Contains(t, stringRep, "test-issuer")
}

func TestSessionObjectGetUserUUIDInvalid(t *testing.T) {
	session := &auth.SessionObject{UserID: "not-a-uuid"}

	_, err := session.GetUserUUID()
	assert.Error(t, err)
}

func TestSessionFromToken(t *testing.T) {
	userID := uuid.New().String()
	cfg := testConfig{signingKey: "test-signing-key"}

	provider := &MockIdentityProvider{}
	auther := auth.NewAuthenticator(provider, cfg)

	token, err := auther.TokenService().Generate(stubIdentity{
		id:    userID,
		name:  "Ann",
		email: "a@x.com",
	})
	require.NoError(t, err)

	session, err := auther.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, session.GetUserID())
	assert.Equal(t, "a@x.com", session.GetUserEmail())
	assert.Equal(t, "test-issuer", session.GetIssuer())
	assert.Equal(t, []string{"test-audience"}, session.GetAudience())
	require.NotNil(t, session.GetExpiration())
	assert.WithinDuration(t, time.Now().Add(time.Hour), *session.GetExpiration(), 5*time.Second)
}
