package memory

import (
	"context"
	"strings"

	"github.com/shyakx/erp-system/internal/domain"
	"github.com/shyakx/erp-system/internal/domain/entity"
	"github.com/shyakx/erp-system/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. Email único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

// NewUserRepository construye el repo.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create guarda el usuario. Email repetido -> domain.ErrDuplicate.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.s.write(nil, func(t *tables) error {
		for _, other := range t.users {
			if other.ID == u.ID || strings.EqualFold(other.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		c := *u
		t.users[u.ID] = &c
		return nil
	})
}

// GetByID devuelve una copia del usuario; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.s.read(nil, func(t *tables) {
		if u, ok := t.users[id]; ok {
			c := *u
			out = &c
		}
	})
	return out, nil
}

// GetByEmail busca por email (único global).
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	r.s.read(nil, func(t *tables) {
		for _, u := range t.users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				out = &c
				return
			}
		}
	})
	return out, nil
}
