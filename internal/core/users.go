package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService owns login accounts. Accounts live in the store like any
// other collection; passwords are bcrypt hashes.
type UserService interface {
	// Authenticate verifies a username/password pair and returns the user.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	// EnsureAdmin seeds an admin account when the user collection is
	// empty, so a fresh deployment can log in.
	EnsureAdmin(ctx context.Context, username, password string) error
}

type users struct {
	store *Store
}

func NewUsers(store *Store) UserService {
	return &users{store: store}
}

func (u *users) Authenticate(_ context.Context, username, password string) (*User, error) {
	var found *User
	u.store.View(func(st *State) {
		for i := range st.Users {
			if st.Users[i].Username == username {
				cp := st.Users[i]
				found = &cp
				return
			}
		}
	})
	if found == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return found, nil
}

func (u *users) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return u.store.Update(ctx, func(st *State) error {
		if len(st.Users) > 0 {
			return nil
		}
		st.Users = []User{{
			ID:           uuid.NewString(),
			Username:     username,
			PasswordHash: string(hash),
			Role:         "admin",
			CreatedAt:    time.Now(),
		}}
		st.MarkDirty(KeyUsers)
		return nil
	})
}
