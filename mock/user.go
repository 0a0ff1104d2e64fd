package mock

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Interface compliance check.
var _ lab.UserService = (*UserService)(nil)

// UserService is a test double for lab.UserService.
type UserService struct {
	LoginFn     func(ctx context.Context, creds lab.Credentials) (lab.User, error)
	RegisterFn  func(ctx context.Context, creds lab.Credentials) (string, error)
	LogoutFn    func(ctx context.Context) error
	LoginUserFn func(ctx context.Context) (lab.User, error)

	CreateUserFn func(ctx context.Context, user lab.User) (string, error)
	UpdateUserFn func(ctx context.Context, user lab.User) error
	DeleteUserFn func(ctx context.Context, userID string) error
	ListUsersFn  func(ctx context.Context, page lab.PageRequest) (lab.Page[lab.User], error)
}

// Login delegates to LoginFn.
func (s *UserService) Login(ctx context.Context, creds lab.Credentials) (lab.User, error) {
	return s.LoginFn(ctx, creds)
}

// Register delegates to RegisterFn.
func (s *UserService) Register(ctx context.Context, creds lab.Credentials) (string, error) {
	return s.RegisterFn(ctx, creds)
}

// Logout delegates to LogoutFn.
func (s *UserService) Logout(ctx context.Context) error {
	return s.LogoutFn(ctx)
}

// LoginUser delegates to LoginUserFn.
func (s *UserService) LoginUser(ctx context.Context) (lab.User, error) {
	return s.LoginUserFn(ctx)
}

// CreateUser delegates to CreateUserFn.
func (s *UserService) CreateUser(ctx context.Context, user lab.User) (string, error) {
	return s.CreateUserFn(ctx, user)
}

// UpdateUser delegates to UpdateUserFn.
func (s *UserService) UpdateUser(ctx context.Context, user lab.User) error {
	return s.UpdateUserFn(ctx, user)
}

// DeleteUser delegates to DeleteUserFn.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.DeleteUserFn(ctx, userID)
}

// ListUsers delegates to ListUsersFn.
func (s *UserService) ListUsers(ctx context.Context, page lab.PageRequest) (lab.Page[lab.User], error) {
	return s.ListUsersFn(ctx, page)
}
