package static

import (
	"context"

	domuser "example.com/productgrid/internal/domain/user"
)

// UserRepository knows exactly one editor, taken from configuration.
type UserRepository struct {
	editor domuser.User
}

func NewUserRepository(username, passwordHash string) *UserRepository {
	return &UserRepository{editor: domuser.User{Username: username, PasswordHash: passwordHash}}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domuser.User, error) {
	if r.editor.Username == "" || r.editor.PasswordHash == "" || username != r.editor.Username {
		return nil, domuser.ErrUserNotFound
	}
	u := r.editor
	return &u, nil
}
