package services

import (
	"context"
	"errors"
	"testing"

	"salescrm/model"
	"salescrm/repository"
)

func TestEnsureUserAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	if err := EnsureUser(ctx, store, " Admin ", "s3cret", "", model.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	if err := EnsureUser(ctx, store, "admin", "changed", "", model.RoleAdmin); err != nil {
		t.Fatalf("second EnsureUser: %v", err)
	}

	user, err := Authenticate(ctx, store, "ADMIN", "s3cret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Role != model.RoleAdmin || user.Name != "admin" || user.Password == "s3cret" {
		t.Fatalf("user = %+v", user)
	}

	if _, err := Authenticate(ctx, store, "admin", "changed"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("seed overwrote the password: %v", err)
	}
	if _, err := Authenticate(ctx, store, "ghost", "x"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("unknown user err = %v", err)
	}

	found, err := GetUserByID(ctx, store, user.UserID)
	if err != nil || found.Username != "admin" {
		t.Fatalf("GetUserByID = %+v, %v", found, err)
	}
	if _, err := GetUserByID(ctx, store, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := EnsureUser(ctx, store, "", "x", "", model.RoleAdmin); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestCreateUserValidatesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	sam, err := CreateUser(ctx, store, NewUser{
		Username: " Sam ",
		Password: "pw-sam",
		Name:     "Sam",
		Email:    "Sam@Example.com",
		Role:     model.RoleSalesperson,
		Branch:   "North",
	}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if sam.UserID == "" || sam.Username != "sam" || sam.Email != "sam@example.com" || !sam.IsActive || !sam.CreatedAt.Equal(testNow) {
		t.Fatalf("user = %+v", sam)
	}
	if _, err := Authenticate(ctx, store, "sam", "pw-sam"); err != nil {
		t.Fatalf("new account cannot sign in: %v", err)
	}

	if _, err := CreateUser(ctx, store, NewUser{Username: "SAM", Password: "x", Role: model.RoleManager}, testNow); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate err = %v, want ErrConflict", err)
	}
	if _, err := CreateUser(ctx, store, NewUser{Username: "eve", Password: "x", Role: "owner"}, testNow); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad role err = %v, want ErrInvalidInput", err)
	}

	all, err := ListUsers(ctx, store)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListUsers = %d, %v", len(all), err)
	}
}

func TestUpdateUserChangesRoleAndDeactivates(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	sam, err := CreateUser(ctx, store, NewUser{Username: "sam", Password: "pw-sam", Role: model.RoleSalesperson}, testNow)
	if err != nil {
		t.Fatal(err)
	}

	role := model.RoleManager
	password := "new-pw"
	updated, err := UpdateUser(ctx, store, sam.UserID, UserUpdate{Role: &role, Password: &password})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Role != model.RoleManager {
		t.Fatalf("role = %q", updated.Role)
	}
	if _, err := Authenticate(ctx, store, "sam", "new-pw"); err != nil {
		t.Fatalf("password change not applied: %v", err)
	}

	inactive := false
	if _, err := UpdateUser(ctx, store, sam.UserID, UserUpdate{IsActive: &inactive}); err != nil {
		t.Fatal(err)
	}
	if _, err := Authenticate(ctx, store, "sam", "new-pw"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("deactivated account signed in: %v", err)
	}

	bad := "owner"
	if _, err := UpdateUser(ctx, store, sam.UserID, UserUpdate{Role: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad role err = %v", err)
	}
	if _, err := UpdateUser(ctx, store, "missing", UserUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}
