package service

import (
	"context"
	"errors"
	"fmt"

	"remo-go/internal/api/dto"
	"remo-go/internal/config"
	infraGoogle "remo-go/internal/infra/google"
	"remo-go/internal/model"
	"remo-go/internal/repository"
	"remo-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidGoogleToken = errors.New("invalid google id token")
)

// GoogleTokenVerifier Google ID Token 验证的外部协作方
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*infraGoogle.TokenInfo, error)
}

type AuthService struct {
	userRepo *repository.UserRepository
	verifier GoogleTokenVerifier
}

func NewAuthService(userRepo *repository.UserRepository, verifier GoogleTokenVerifier) *AuthService {
	return &AuthService{userRepo: userRepo, verifier: verifier}
}

// GoogleLogin 用 Google ID Token 换取本地会话令牌，同时 upsert 用户资料
func (s *AuthService) GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.TokenData, error) {
	info, err := s.verifier.Verify(ctx, req.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	user := &model.User{
		ID:      info.Sub,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
	}

	if err := s.userRepo.Upsert(user); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	expireSeconds := int(config.GetJWT().ExpireDuration().Seconds())

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: expireSeconds,
		User:      *toUserInfo(user),
	}, nil
}

// GetCurrentUser 根据身份获取用户信息
func (s *AuthService) GetCurrentUser(identity model.Identity) (*dto.UserInfo, error) {
	userID, ok := identity.UserID()
	if !ok {
		return nil, ErrAuthenticationRequired
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}
}
