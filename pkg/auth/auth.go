// Package auth owns admin credentials and bearer tokens. Every admin
// surface trusts a verified identity from here and carries no
// authentication logic of its own.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/basalt-io/basalt-cms/pkg/rand"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 30 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	generatedPasswordLength = 16
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	db     db.Database
	secret []byte
}

func NewService(database db.Database, secret string) *Service {
	return &Service{
		db:     database,
		secret: []byte(secret),
	}
}

type claims struct {
	TokenType string `json:"type"`
	AdminID   uint   `json:"aid"`
	jwt.RegisteredClaims
}

func (s *Service) Login(username, password string) (model.TokenResponse, error) {
	admin, err := s.db.GetAdminByUsername(username)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if admin.ID == 0 {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issueTokens(admin)
}

func (s *Service) Refresh(refreshToken string) (model.TokenResponse, error) {
	c, err := s.parse(refreshToken)
	if err != nil || c.TokenType != tokenTypeRefresh {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	admin, err := s.db.GetAdminByUsername(c.Subject)
	if err != nil {
		return model.TokenResponse{}, err
	}
	if admin.ID == 0 {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issueTokens(admin)
}

// Verify checks an access token and returns the admin identity it
// carries.
func (s *Service) Verify(token string) (model.AdminInfo, error) {
	c, err := s.parse(token)
	if err != nil || c.TokenType != tokenTypeAccess {
		return model.AdminInfo{}, ErrInvalidCredentials
	}
	return model.AdminInfo{ID: c.AdminID, Username: c.Subject}, nil
}

func (s *Service) issueTokens(admin db.Admin) (model.TokenResponse, error) {
	access, err := s.sign(admin, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return model.TokenResponse{}, err
	}
	refresh, err := s.sign(admin, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		Admin:        &model.AdminInfo{ID: admin.ID, Username: admin.Username},
	}, nil
}

func (s *Service) sign(admin db.Admin, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		TokenType: tokenType,
		AdminID:   admin.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.secret)
}

func (s *Service) parse(token string) (*claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return c, nil
}

// EnsureAdmin creates the initial admin account when none exists yet.
// With no password supplied, one is generated and logged exactly once
// so a fresh deployment can be entered.
func (s *Service) EnsureAdmin(username, password string) error {
	count, err := s.db.CountAdmins()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	generated := false
	if password == "" {
		password = rand.StringWithAll(generatedPasswordLength)
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.db.CreateAdmin(username, string(hash)); err != nil {
		return err
	}

	if generated {
		logrus.Infof("created initial admin %q with generated password: %s", username, password)
	} else {
		logrus.Infof("created initial admin %q", username)
	}
	return nil
}
