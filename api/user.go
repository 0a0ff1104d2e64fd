package api

import (
	"context"
	"net/http"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

type loginRequestDTO struct {
	UserAccount  string `json:"userAccount"`
	UserPassword string `json:"userPassword"`
}

type registerRequestDTO struct {
	UserAccount   string `json:"userAccount"`
	UserPassword  string `json:"userPassword"`
	CheckPassword string `json:"checkPassword"`
}

// Login authenticates and returns the logged-in user.
func (c *Client) Login(ctx context.Context, creds lab.Credentials) (lab.User, error) {
	var dto userDTO
	body := loginRequestDTO{UserAccount: creds.Account, UserPassword: creds.Password}
	if err := c.do(ctx, http.MethodPost, "/user/login", body, &dto); err != nil {
		return lab.User{}, err
	}
	return dto.toUser(), nil
}

// Register creates an account and returns the new user ID.
func (c *Client) Register(ctx context.Context, creds lab.Credentials) (string, error) {
	var id flexID
	body := registerRequestDTO{
		UserAccount:   creds.Account,
		UserPassword:  creds.Password,
		CheckPassword: creds.Password,
	}
	if err := c.do(ctx, http.MethodPost, "/user/register", body, &id); err != nil {
		return "", err
	}
	return string(id), nil
}

// Logout ends the current login session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/user/logout", struct{}{}, nil)
}

// LoginUser fetches the currently logged-in user.
func (c *Client) LoginUser(ctx context.Context) (lab.User, error) {
	var dto userDTO
	if err := c.do(ctx, http.MethodPost, "/user/get/login", struct{}{}, &dto); err != nil {
		return lab.User{}, err
	}
	return dto.toUser(), nil
}

type userUpsertDTO struct {
	ID          string `json:"id,omitempty"`
	UserAccount string `json:"userAccount"`
	UserName    string `json:"userName,omitempty"`
	UserRole    string `json:"userRole,omitempty"`
}

// CreateUser creates an account on behalf of an admin and returns its ID.
func (c *Client) CreateUser(ctx context.Context, user lab.User) (string, error) {
	var id flexID
	body := userUpsertDTO{UserAccount: user.Account, UserName: user.Name, UserRole: user.Role}
	if err := c.do(ctx, http.MethodPost, "/user/create", body, &id); err != nil {
		return "", err
	}
	return string(id), nil
}

// UpdateUser updates an account's profile fields.
func (c *Client) UpdateUser(ctx context.Context, user lab.User) error {
	body := userUpsertDTO{ID: user.ID, UserAccount: user.Account, UserName: user.Name, UserRole: user.Role}
	return c.do(ctx, http.MethodPost, "/user/update", body, nil)
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	body := struct {
		ID string `json:"id"`
	}{ID: userID}
	return c.do(ctx, http.MethodPost, "/user/delete", body, nil)
}

// ListUsers returns one page of accounts.
func (c *Client) ListUsers(ctx context.Context, page lab.PageRequest) (lab.Page[lab.User], error) {
	var dto pageDTO[userDTO]
	body := pageRequestDTO{Current: page.Current, PageSize: page.PageSize}
	if err := c.do(ctx, http.MethodPost, "/user/list/page", body, &dto); err != nil {
		return lab.Page[lab.User]{}, err
	}
	return toPage(dto, userDTO.toUser), nil
}
