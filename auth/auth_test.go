package auth_test

import (
	"context"
	"errors"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/auth"
	"github.com/Rvioleck/3D-Lab-Data-Factory/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()
	t.Run("records the user", func(t *testing.T) {
		t.Parallel()
		svc := &mock.UserService{
			LoginFn: func(ctx context.Context, creds lab.Credentials) (lab.User, error) {
				assert.Equal(t, "alice", creds.Account)
				return lab.User{ID: "7", Account: "alice", Role: lab.AdminRole}, nil
			},
		}
		store := auth.New(svc)

		user, err := store.Login(context.Background(), lab.Credentials{Account: "alice", Password: "secret12"})
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Account)
		assert.True(t, store.LoggedIn())
		assert.True(t, store.IsAdmin())
		got, ok := store.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "7", got.ID)
	})

	t.Run("failure leaves the store logged out", func(t *testing.T) {
		t.Parallel()
		wantErr := &lab.APIError{Code: 40101, Message: "wrong password"}
		svc := &mock.UserService{
			LoginFn: func(ctx context.Context, creds lab.Credentials) (lab.User, error) {
				return lab.User{}, wantErr
			},
		}
		store := auth.New(svc)

		_, err := store.Login(context.Background(), lab.Credentials{Account: "alice", Password: "nope"})
		require.ErrorIs(t, err, wantErr)

		assert.False(t, store.LoggedIn())
		assert.ErrorIs(t, store.Err(), wantErr)
	})
}

func TestRegister_LogsInAfterCreating(t *testing.T) {
	t.Parallel()
	svc := &mock.UserService{
		RegisterFn: func(ctx context.Context, creds lab.Credentials) (string, error) {
			return "42", nil
		},
		LoginFn: func(ctx context.Context, creds lab.Credentials) (lab.User, error) {
			return lab.User{ID: "42", Account: creds.Account}, nil
		},
	}
	store := auth.New(svc)

	user, err := store.Register(context.Background(), lab.Credentials{Account: "bob", Password: "secret12"})
	require.NoError(t, err)

	assert.Equal(t, "42", user.ID)
	assert.True(t, store.LoggedIn())
}

func TestLogout_ClearsStateEvenOnBackendFailure(t *testing.T) {
	t.Parallel()
	svc := &mock.UserService{
		LoginFn: func(ctx context.Context, creds lab.Credentials) (lab.User, error) {
			return lab.User{Account: "alice"}, nil
		},
		LogoutFn: func(ctx context.Context) error {
			return errors.New("backend down")
		},
	}
	store := auth.New(svc)
	_, err := store.Login(context.Background(), lab.Credentials{Account: "alice"})
	require.NoError(t, err)

	require.Error(t, store.Logout(context.Background()))

	assert.False(t, store.LoggedIn())
	_, ok := store.CurrentUser()
	assert.False(t, ok)
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	t.Run("restores a backend session", func(t *testing.T) {
		t.Parallel()
		svc := &mock.UserService{
			LoginUserFn: func(ctx context.Context) (lab.User, error) {
				return lab.User{Account: "alice"}, nil
			},
		}
		store := auth.New(svc)

		require.NoError(t, store.Refresh(context.Background()))
		assert.True(t, store.LoggedIn())
	})

	t.Run("failure logs the store out", func(t *testing.T) {
		t.Parallel()
		loggedIn := true
		svc := &mock.UserService{
			LoginFn: func(ctx context.Context, creds lab.Credentials) (lab.User, error) {
				return lab.User{Account: "alice"}, nil
			},
			LoginUserFn: func(ctx context.Context) (lab.User, error) {
				if loggedIn {
					return lab.User{Account: "alice"}, nil
				}
				return lab.User{}, &lab.APIError{Code: 40100, Message: "not logged in"}
			},
		}
		store := auth.New(svc)
		_, err := store.Login(context.Background(), lab.Credentials{Account: "alice"})
		require.NoError(t, err)

		loggedIn = false
		require.Error(t, store.Refresh(context.Background()))
		assert.False(t, store.LoggedIn())
	})
}
