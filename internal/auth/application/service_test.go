package application

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yoga28042005/carekart-server/internal/auth/domain"
)

type memoryUsers struct {
	nextID int
	users  []domain.User
}

func (m *memoryUsers) Create(ctx context.Context, name, email, passwordHash string) (int, error) {
	m.nextID++
	m.users = append(m.users, domain.User{ID: m.nextID, Name: name, Email: email, PasswordHash: passwordHash})
	return m.nextID, nil
}

func (m *memoryUsers) Exists(ctx context.Context, name, email string) (bool, error) {
	for _, u := range m.users {
		if u.Name == name || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryUsers) ByName(ctx context.Context, name string) (domain.User, error) {
	for _, u := range m.users {
		if u.Name == name {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func newTestService() (*Service, *memoryUsers, *TokenManager) {
	users := &memoryUsers{}
	tokens := NewTokenManager("test-secret", time.Hour)
	return NewService(slog.New(slog.DiscardHandler), users, tokens), users, tokens
}

func TestSignupHashesPassword(t *testing.T) {
	svc, users, _ := newTestService()

	err := svc.Signup(context.Background(), "asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	require.Len(t, users.users, 1)
	stored := users.users[0]
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestSignupRejectsDuplicateNameOrEmail(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Signup(context.Background(), "asha", "asha@example.com", "pw"))

	err := svc.Signup(context.Background(), "asha", "other@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrUserExists)

	err = svc.Signup(context.Background(), "other", "asha@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, tokens := newTestService()
	require.NoError(t, svc.Signup(context.Background(), "asha", "asha@example.com", "s3cret"))

	session, err := svc.Login(context.Background(), "asha", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, 1, session.UserID)

	uid, err := tokens.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, uid)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Signup(context.Background(), "asha", "asha@example.com", "right"))

	_, err := svc.Login(context.Background(), "asha", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "right")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestUserIDByName(t *testing.T) {
	svc, _, _ := newTestService()
	require.NoError(t, svc.Signup(context.Background(), "asha", "asha@example.com", "pw"))

	id, err := svc.UserIDByName(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	_, err = svc.UserIDByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTokenVerifyRejectsTampering(t *testing.T) {
	tokens := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := tokens.Issue(7, "asha")
	require.NoError(t, err)

	uid, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 7, uid)

	_, err = other.Verify(token)
	assert.Error(t, err)

	expired := NewTokenManager("secret-a", -time.Minute)
	token, err = expired.Issue(7, "asha")
	require.NoError(t, err)
	_, err = expired.Verify(token)
	assert.Error(t, err)
}
