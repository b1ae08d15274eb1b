package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type ctxKey struct{}

var (
	ctxEditorKey       = ctxKey{}
	errUnauthenticated = errors.New("unauthenticated")
)

type authEditor struct {
	Username string
}

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.authSvc.Authenticate(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxEditorKey, &authEditor{Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAuthEditor(ctx context.Context) *authEditor {
	if editor, ok := ctx.Value(ctxEditorKey).(*authEditor); ok {
		return editor
	}
	return nil
}

// editorName is used for audit logging; anonymous when auth is disabled.
func editorName(ctx context.Context) string {
	if editor := getAuthEditor(ctx); editor != nil {
		return editor.Username
	}
	return "anonymous"
}
