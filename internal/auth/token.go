package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carregadas nos tokens de acesso e refresh.
type Claims struct {
	UsuarioID string `json:"id"`
	Nome      string `json:"nome"`
	Matricula string `json:"matricula"`
	Perfil    string `json:"perfil"`
	SessaoID  string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (m *TokenManager) NewAccess(c Claims) (string, error) {
	return sign(c, m.accessSecret, m.accessTTL)
}

func (m *TokenManager) NewRefresh(c Claims) (string, error) {
	return sign(c, m.refreshSecret, m.refreshTTL)
}

func (m *TokenManager) ParseAccess(token string) (*Claims, error) {
	return parse(token, m.accessSecret)
}

func (m *TokenManager) ParseRefresh(token string) (*Claims, error) {
	return parse(token, m.refreshSecret)
}

func sign(c Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   c.UsuarioID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

func parse(token string, secret []byte) (*Claims, error) {
	var c Claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return &c, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return &c, nil
}
