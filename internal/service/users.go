package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hongminglow/staffly-be/internal/apperr"
	"github.com/hongminglow/staffly-be/internal/auth"
	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/storage"
)

const userExistsMessage = "User already exists!"

// Users manages accounts.
type Users struct {
	store storage.UserStore
}

func NewUsers(store storage.UserStore) *Users {
	return &Users{store: store}
}

// Register creates an account unless the email is taken, in which case it
// returns the existing-user result instead of an error.
func (s *Users) Register(ctx context.Context, req dto.RegisterRequest) (models.InsertResult, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return models.InsertResult{}, apperr.BadRequest("email is required")
	}

	role := models.RoleUnset
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok || parsed == models.RoleAdmin {
			return models.InsertResult{}, apperr.BadRequest("role must be employee or hr")
		}
		role = selfAssignable(parsed)
	}

	var hash string
	if req.Password != "" {
		var err error
		if hash, err = auth.HashPassword(req.Password); err != nil {
			if errors.Is(err, auth.ErrWeakPassword) {
				return models.InsertResult{}, apperr.BadRequest(err.Error())
			}
			return models.InsertResult{}, apperr.Wrap(apperr.CodeInternal, "failed to hash password", err)
		}
	}

	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return existingUser(), nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.InsertResult{}, storeError(err, "")
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		Photo:         strings.TrimSpace(req.Photo),
		Role:          role,
		WorkStatus:    models.WorkStatusActive,
		IsVerified:    false,
		Designation:   strings.TrimSpace(req.Designation),
		BankAccountNo: strings.TrimSpace(req.BankAccountNo),
		Salary:        req.Salary,
		PasswordHash:  hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return existingUser(), nil
		}
		return models.InsertResult{}, storeError(err, "")
	}
	return models.InsertResult{InsertedID: &created.ID}, nil
}

// selfAssignable is the role a signup may hold without an admin. Requests for
// hr are stored unset; only /update-role grants it.
func selfAssignable(requested models.Role) models.Role {
	if requested == models.RoleEmployee {
		return models.RoleEmployee
	}
	return models.RoleUnset
}

func existingUser() models.InsertResult {
	return models.InsertResult{Message: userExistsMessage}
}

func (s *Users) GetByEmail(ctx context.Context, email string) (models.User, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	return user, storeError(err, "User not found")
}

func (s *Users) GetByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	return user, storeError(err, "User not found")
}

// List returns users holding any of roles, or all users.
func (s *Users) List(ctx context.Context, roles ...models.Role) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx, roles...)
	if err != nil {
		return nil, storeError(err, "")
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// RoleFlags reports the caller's role as booleans. An unknown email yields
// all false.
func (s *Users) RoleFlags(ctx context.Context, email string) (models.RoleFlags, error) {
	user, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, storage.ErrNotFound) {
		return models.RoleFlags{}, nil
	}
	if err != nil {
		return models.RoleFlags{}, storeError(err, "")
	}
	return models.FlagsFor(user.Role), nil
}

func (s *Users) UpdateRole(ctx context.Context, id, role string) (models.UpdateResult, error) {
	parsed, ok := models.ParseRole(role)
	if !ok {
		return models.UpdateResult{}, apperr.BadRequest("role must be admin, hr or employee")
	}
	res, err := s.store.SetRole(ctx, id, parsed)
	return res, storeError(err, "User not found")
}

func (s *Users) SetVerified(ctx context.Context, id string, verified *bool) (models.UpdateResult, error) {
	if verified == nil {
		return models.UpdateResult{}, apperr.BadRequest("isVerified is required")
	}
	res, err := s.store.SetVerified(ctx, id, *verified)
	return res, storeError(err, "User not found")
}

// Deactivate fires a user. There is no reverse operation.
func (s *Users) Deactivate(ctx context.Context, id string) (models.UpdateResult, error) {
	res, err := s.store.SetWorkStatus(ctx, id, models.WorkStatusInactive)
	return res, storeError(err, "User not found")
}
