package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domuser "example.com/productgrid/internal/domain/user"
)

type mockUserRepository struct {
	users  map[string]*domuser.User
	getErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*domuser.User)}
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domuser.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if user, ok := m.users[username]; ok {
		cloned := *user
		return &cloned, nil
	}
	return nil, domuser.ErrUserNotFound
}

type mockPasswordComparer struct {
	compareErr error
}

func (m *mockPasswordComparer) Compare(hash string, password string) error {
	return m.compareErr
}

type mockTokenService struct {
	token       string
	generateErr error
	claims      *Claims
	parseErr    error
}

func (m *mockTokenService) GenerateToken(u *domuser.User) (string, error) {
	if m.generateErr != nil {
		return "", m.generateErr
	}
	if m.token != "" {
		return m.token, nil
	}
	return "mock-token-" + u.Username, nil
}

func (m *mockTokenService) ParseToken(token string) (*Claims, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	return m.claims, nil
}

func TestLogin_Success(t *testing.T) {
	repo := newMockUserRepository()
	repo.users["editor"] = &domuser.User{Username: "editor", PasswordHash: "hashed_password"}
	svc := NewService(repo, &mockPasswordComparer{}, &mockTokenService{token: "valid-jwt-token"})

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "  editor ",
		Password: "correctpassword",
	})

	require.NoError(t, err)
	require.Equal(t, "valid-jwt-token", result.Token)
	require.Equal(t, "editor", result.User.Username)
}

func TestLogin_MissingInput(t *testing.T) {
	tests := []struct {
		name  string
		input LoginInput
	}{
		{name: "Empty username", input: LoginInput{Password: "secret"}},
		{name: "Blank username", input: LoginInput{Username: "   ", Password: "secret"}},
		{name: "Empty password", input: LoginInput{Username: "editor"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(newMockUserRepository(), &mockPasswordComparer{}, &mockTokenService{})

			result, err := svc.Login(context.Background(), tt.input)

			require.ErrorIs(t, err, domuser.ErrInvalidCredential)
			require.Nil(t, result)
		})
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewService(newMockUserRepository(), &mockPasswordComparer{}, &mockTokenService{})

	result, err := svc.Login(context.Background(), LoginInput{Username: "ghost", Password: "secret"})

	require.ErrorIs(t, err, domuser.ErrUnauthorized)
	require.Nil(t, result)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newMockUserRepository()
	repo.users["editor"] = &domuser.User{Username: "editor", PasswordHash: "hash"}
	svc := NewService(repo, &mockPasswordComparer{compareErr: errors.New("mismatch")}, &mockTokenService{})

	result, err := svc.Login(context.Background(), LoginInput{Username: "editor", Password: "wrong"})

	require.ErrorIs(t, err, domuser.ErrUnauthorized)
	require.Nil(t, result)
}

func TestLogin_TokenFailure(t *testing.T) {
	repo := newMockUserRepository()
	repo.users["editor"] = &domuser.User{Username: "editor", PasswordHash: "hash"}
	boom := errors.New("sign failed")
	svc := NewService(repo, &mockPasswordComparer{}, &mockTokenService{generateErr: boom})

	_, err := svc.Login(context.Background(), LoginInput{Username: "editor", Password: "secret"})

	require.ErrorIs(t, err, boom)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newMockUserRepository(), &mockPasswordComparer{}, &mockTokenService{claims: &Claims{Username: "editor"}})

	claims, err := svc.Authenticate("token")
	require.NoError(t, err)
	require.Equal(t, "editor", claims.Username)

	svc = NewService(newMockUserRepository(), &mockPasswordComparer{}, &mockTokenService{parseErr: errors.New("expired")})
	_, err = svc.Authenticate("token")
	require.ErrorIs(t, err, domuser.ErrUnauthorized)
}
