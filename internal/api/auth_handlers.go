package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/quillapp/quill-server/internal/domain"
	"github.com/quillapp/quill-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSetupStatus",
		Method:      http.MethodGet,
		Path:        "/api/auth/setup",
		Summary:     "Setup status",
		Description: "Reports whether the author account still needs to be created",
		Tags:        []string{"Auth"},
	}, s.handleGetSetupStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "setup",
		Method:      http.MethodPost,
		Path:        "/api/auth/setup",
		Summary:     "Create author account",
		Description: "Creates the author account. Only available before any account exists.",
		Tags:        []string{"Auth"},
	}, s.handleSetup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "refresh",
		Method:      http.MethodPost,
		Path:        "/api/auth/refresh",
		Summary:     "Refresh tokens",
		Description: "Rotates a refresh token and issues a new access token",
		Tags:        []string{"Auth"},
	}, s.handleRefresh)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/auth/logout",
		Summary:       "Log out",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleLogout)
}

// === DTOs ===

type SetupStatusResponse struct {
	SetupRequired bool `json:"setup_required" doc:"True when no author account exists yet"`
}

type SetupStatusOutput struct {
	Body SetupStatusResponse
}

type SetupRequest struct {
	Email       string `json:"email" format:"email" doc:"Author email address"`
	Password    string `json:"password" minLength:"8" maxLength:"1024" doc:"Account password"`
	DisplayName string `json:"display_name" minLength:"1" doc:"Name shown on posts"`
}

type SetupInput struct {
	Body SetupRequest
}

type LoginRequest struct {
	Email    string `json:"email" format:"email" doc:"Author email address"`
	Password string `json:"password" minLength:"1" doc:"Account password"`
}

type LoginInput struct {
	Body LoginRequest
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token to rotate"`
}

type RefreshInput struct {
	Body RefreshRequest
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" minLength:"1" doc:"Refresh token of the session to revoke"`
}

type LogoutInput struct {
	Body LogoutRequest
}

type LogoutOutput struct{}

// UserResponse is the public view of an account. The password hash
// never leaves the server.
type UserResponse struct {
	ID          string    `json:"id" doc:"User ID"`
	Email       string    `json:"email" doc:"Email address"`
	DisplayName string    `json:"display_name" doc:"Display name"`
	CreatedAt   time.Time `json:"created_at" doc:"Account creation time"`
}

type AuthResponse struct {
	User         UserResponse `json:"user" doc:"Authenticated account"`
	AccessToken  string       `json:"access_token" doc:"Bearer token for API requests"`
	RefreshToken string       `json:"refresh_token" doc:"Token used to obtain new access tokens"`
	ExpiresAt    time.Time    `json:"expires_at" doc:"Access token expiry"`
}

type AuthOutput struct {
	Body AuthResponse
}

// === Handlers ===

func (s *Server) handleGetSetupStatus(ctx context.Context, _ *struct{}) (*SetupStatusOutput, error) {
	required, err := s.services.Auth.IsSetupRequired(ctx)
	if err != nil {
		return nil, err
	}
	return &SetupStatusOutput{Body: SetupStatusResponse{SetupRequired: required}}, nil
}

func (s *Server) handleSetup(ctx context.Context, input *SetupInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Setup(ctx, service.SetupRequest{
		Email:       input.Body.Email,
		Password:    input.Body.Password,
		DisplayName: input.Body.DisplayName,
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:     input.Body.Email,
		Password:  input.Body.Password,
		IPAddress: clientIP(ctx),
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleRefresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Refresh(ctx, service.RefreshRequest{
		RefreshToken: input.Body.RefreshToken,
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: mapAuthResponse(resp)}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *LogoutInput) (*LogoutOutput, error) {
	if err := s.services.Auth.Logout(ctx, input.Body.RefreshToken); err != nil {
		return nil, err
	}
	return &LogoutOutput{}, nil
}

// === Mappers ===

func mapUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}

func mapAuthResponse(resp *service.AuthResponse) AuthResponse {
	return AuthResponse{
		User:         mapUserResponse(resp.User),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}
}
