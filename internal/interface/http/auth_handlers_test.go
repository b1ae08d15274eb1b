package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/productgrid/internal/infra/persistence/static"
	"example.com/productgrid/internal/infra/security"
	authuc "example.com/productgrid/internal/usecase/auth"
	griduc "example.com/productgrid/internal/usecase/grid"
)

func setupAuthGridAPI(t *testing.T) http.Handler {
	t.Helper()
	hasher := security.NewBcryptService(4)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	authSvc := authuc.NewService(
		static.NewUserRepository("editor", hash),
		hasher,
		security.NewJWTService("test-secret", time.Hour),
	)
	api := NewAPI(Dependencies{
		Grid:        griduc.NewController(gridProducts(), griduc.Options{Logger: quietLogger()}),
		AuthService: authSvc,
		Logger:      quietLogger(),
	})
	return api.Router()
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "editor",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeView(t, rec)
	token, ok := resp["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestLogin(t *testing.T) {
	router := setupAuthGridAPI(t)

	token := login(t, router)
	require.NotEmpty(t, token)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "editor",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{"username": "editor"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_DisabledWithoutAuthService(t *testing.T) {
	router := setupGridAPI(t, false, nil, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"username": "editor",
		"password": "secret123",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditRoutesRequireToken(t *testing.T) {
	router := setupAuthGridAPI(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/grid/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/grid/add", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := newJSONRequest(t, http.MethodPost, "/api/v1/grid/add", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = serve(router, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = newJSONRequest(t, http.MethodPost, "/api/v1/grid/add", nil)
	req.Header.Set("Authorization", "Bearer "+login(t, router))
	rec = serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, float64(5), decodeView(t, rec)["editedId"])
}
