package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/sharesplit/internal/auth"
	"github.com/mmynk/sharesplit/internal/storage/sqlite"
	"github.com/mmynk/sharesplit/pkg/api"
	"github.com/mmynk/sharesplit/pkg/api/apiconnect"
)

func setupAuthServer(t *testing.T) (apiconnect.AuthServiceClient, *auth.JWTManager) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret", "sharesplit-test", time.Hour)
	svc := NewAuthService(
		auth.NewPasswordAuthenticator(store, bcrypt.MinCost),
		jwtManager,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	path, handler := apiconnect.NewAuthServiceHandler(svc)
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL), jwtManager
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	client, jwtManager := setupAuthServer(t)
	ctx := context.Background()

	reg, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.User.Email != "alice@example.com" {
		t.Errorf("Email = %s, want normalized", reg.Msg.User.Email)
	}
	claims, err := jwtManager.Validate(reg.Msg.Token)
	if err != nil {
		t.Fatalf("Register token invalid: %v", err)
	}
	if claims.UserID != reg.Msg.User.ID {
		t.Errorf("token user = %s, want %s", claims.UserID, reg.Msg.User.ID)
	}

	login, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.User.ID != reg.Msg.User.ID {
		t.Errorf("Login user = %s, want %s", login.Msg.User.ID, reg.Msg.User.ID)
	}
}

func TestAuthService_Errors(t *testing.T) {
	client, _ := setupAuthServer(t)
	ctx := context.Background()

	if _, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "bob@example.com", Password: "password123",
	})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		call     func() error
		wantCode connect.Code
	}{
		{
			name: "duplicate email",
			call: func() error {
				_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "BOB@example.com", Password: "password123",
				}))
				return err
			},
			wantCode: connect.CodeAlreadyExists,
		},
		{
			name: "weak password",
			call: func() error {
				_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "carol@example.com", Password: "short",
				}))
				return err
			},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "invalid email",
			call: func() error {
				_, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
					Email: "not-an-email", Password: "password123",
				}))
				return err
			},
			wantCode: connect.CodeInvalidArgument,
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{
					Email: "bob@example.com", Password: "wrong-password",
				}))
				return err
			},
			wantCode: connect.CodeUnauthenticated,
		},
		{
			name: "missing credentials",
			call: func() error {
				_, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{}))
				return err
			},
			wantCode: connect.CodeUnauthenticated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if connect.CodeOf(err) != tt.wantCode {
				t.Errorf("code = %v, want %v (err: %v)", connect.CodeOf(err), tt.wantCode, err)
			}
		})
	}
}
