package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"salescrm/logs"
	"salescrm/model"
)

// Authenticate checks a username/password pair. Unknown users, inactive
// accounts and wrong passwords all yield ErrAccessDenied.
func Authenticate(ctx context.Context, users UserStore, username, password string) (*model.User, error) {
	user, err := users.GetUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return nil, upstream("get user", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrAccessDenied
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAccessDenied
	}
	return user, nil
}

func GetUserByID(ctx context.Context, users UserStore, id string) (*model.User, error) {
	user, err := users.GetUserByID(ctx, id)
	if err != nil {
		return nil, upstream("get user", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// NewUser is a staff account an admin asks to create.
type NewUser struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
	Branch   string
}

// CreateUser stores a new active account with a bcrypt-hashed password.
// A taken username yields ErrConflict.
func CreateUser(ctx context.Context, users UserStore, in NewUser, now time.Time) (*model.User, error) {
	username := normalizeUsername(in.Username)
	if username == "" || in.Password == "" || !model.IsValidRole(in.Role) {
		return nil, ErrInvalidInput
	}
	existing, err := users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, upstream("get user", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = username
	}
	user := &model.User{
		UserID:    uuid.New().String(),
		Name:      name,
		Username:  username,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Password:  string(hashed),
		Role:      in.Role,
		Branch:    strings.TrimSpace(in.Branch),
		IsActive:  true,
		CreatedAt: now,
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, upstream("create user", err)
	}
	return user, nil
}

func ListUsers(ctx context.Context, users UserStore) ([]model.User, error) {
	out, err := users.ListUsers(ctx)
	if err != nil {
		return nil, upstream("list users", err)
	}
	return out, nil
}

// UserUpdate carries the optional fields an admin may change; nil means keep.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Branch   *string
	IsActive *bool
}

func UpdateUser(ctx context.Context, users UserStore, id string, upd UserUpdate) (*model.User, error) {
	if upd.Role != nil && !model.IsValidRole(*upd.Role) {
		return nil, ErrInvalidInput
	}
	user, err := GetUserByID(ctx, users, id)
	if err != nil {
		return nil, err
	}

	setString(&user.Name, upd.Name)
	setString(&user.Branch, upd.Branch)
	if upd.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*upd.Email))
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}
	if upd.IsActive != nil {
		user.IsActive = *upd.IsActive
	}
	if upd.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := users.UpdateUser(ctx, user); err != nil {
		return nil, upstream("update user", err)
	}
	return user, nil
}

// EnsureUser creates the user when the username is free. Used to seed the
// first admin account on boot.
func EnsureUser(ctx context.Context, users UserStore, username, password, name, role string) error {
	_, err := CreateUser(ctx, users, NewUser{
		Username: username,
		Password: password,
		Name:     name,
		Role:     role,
	}, time.Now())
	if errors.Is(err, ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	logs.Log.WithField("username", normalizeUsername(username)).Info("seeded user")
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
