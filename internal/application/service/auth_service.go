package service

import (
	"context"
	"strings"

	"github.com/blagajna/pos-api/internal/domain/entity"
	"github.com/blagajna/pos-api/internal/domain/enum"
	"github.com/blagajna/pos-api/internal/domain/repository"
	"github.com/blagajna/pos-api/pkg/apperror"
	"github.com/blagajna/pos-api/pkg/oauth"
	"github.com/blagajna/pos-api/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles sign-in. The normal path is Google OAuth restricted to
// the organization's email domain; the seeded local admin can log in with a
// password as a fallback when OAuth is unavailable.
type AuthService struct {
	userRepo      repository.UserRepository
	oauthService  *oauth.GoogleOAuthService
	jwtManager    *utils.JWTManager
	allowedDomain string
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	oauthService *oauth.GoogleOAuthService,
	jwtManager *utils.JWTManager,
	allowedDomain string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		oauthService:  oauthService,
		jwtManager:    jwtManager,
		allowedDomain: allowedDomain,
	}
}

// TokenPair holds the issued access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// GetAuthURL returns the Google consent URL
func (s *AuthService) GetAuthURL(state string) (string, error) {
	if !s.oauthService.IsConfigured() {
		return "", oauth.ErrOAuthNotConfigured
	}
	return s.oauthService.GetAuthURL(state), nil
}

// HandleGoogleCallback exchanges the authorization code, enforces the
// organization domain, upserts the user and issues tokens.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (*entity.User, *TokenPair, error) {
	token, err := s.oauthService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError("Failed to exchange authorization code")
	}

	info, err := s.oauthService.GetUserInfo(ctx, token)
	if err != nil {
		return nil, nil, apperror.NewBadRequestError("Failed to fetch Google user info")
	}

	if !info.EmailInDomain(s.allowedDomain) {
		return nil, nil, apperror.ErrEmailNotAllowed
	}

	user, err := s.upsertGoogleUser(ctx, info)
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginWithPassword authenticates the seeded local admin. Only accounts
// carrying a password hash can use this path.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || user.Password == nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		return nil, nil, apperror.ErrUnauthorized
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GetCurrentUser loads the authenticated user
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// RefreshTokens validates a refresh token and issues a fresh pair
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}
	return s.issueTokens(user)
}

// FrontendSuccessURL returns the post-login redirect target
func (s *AuthService) FrontendSuccessURL() string {
	return s.oauthService.GetFrontendSuccessURL()
}

// FrontendErrorURL returns the failed-login redirect target
func (s *AuthService) FrontendErrorURL() string {
	return s.oauthService.GetFrontendErrorURL()
}

// upsertGoogleUser links the Google identity to a local account. Manually
// pre-created accounts (placeholder provider ID) are claimed on first login.
func (s *AuthService) upsertGoogleUser(ctx context.Context, info *oauth.GoogleUserInfo) (*entity.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if user.Name != info.Name {
			user.Name = info.Name
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
		return user, nil
	}

	user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(info.Email))
	if err != nil {
		return nil, err
	}
	if user != nil {
		user.GoogleID = info.ID
		if user.Name == "" {
			user.Name = info.Name
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user = &entity.User{
		GoogleID: info.ID,
		Email:    strings.ToLower(info.Email),
		Name:     info.Name,
		Role:     enum.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role.String())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
