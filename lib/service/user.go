package service

import (
	"context"
	"fmt"

	"github.com/opsdeskhq/opsdesk/db/models"
	"github.com/opsdeskhq/opsdesk/lib/security"
	"github.com/opsdeskhq/opsdesk/lib/tokens"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *OpsdeskService) CreateUser(ctx context.Context, login string, password string) (user *models.User, err error) {
	user = &models.User{}

	// generate user login/password if not provided
	user.Login = login
	if login == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		user.Login = string(randLoginBytes)
	}

	if password == "" {
		randPasswordBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		password = string(randPasswordBytes)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}

	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	if _, err := svc.DB.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, err
	}
	//return actual password in the response, not the hashed one
	user.Password = password
	return user, nil
}

func (svc *OpsdeskService) FindUser(ctx context.Context, userId int64) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GenerateToken authenticates a login/password pair or a refresh token and
// returns a fresh access/refresh token pair.
func (svc *OpsdeskService) GenerateToken(ctx context.Context, login, password, inRefreshToken string) (accessToken, refreshToken string, err error) {
	var user models.User

	switch {
	case login != "" || password != "":
		if err := svc.DB.NewSelect().Model(&user).Where("login = ?", login).Limit(1).Scan(ctx); err != nil {
			return "", "", fmt.Errorf("bad auth")
		}
		if !security.VerifyPassword(user.Password, password) {
			return "", "", fmt.Errorf("bad auth")
		}
	case inRefreshToken != "":
		claims, err := tokens.ParseToken(svc.Config.JWTSecret, inRefreshToken)
		if err != nil || claims.Subject != "refresh" {
			return "", "", fmt.Errorf("bad auth")
		}
		if err := svc.DB.NewSelect().Model(&user).Where("id = ?", claims.ID).Limit(1).Scan(ctx); err != nil {
			return "", "", fmt.Errorf("bad auth")
		}
	default:
		return "", "", fmt.Errorf("login and password or refresh token is required")
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}
