// Package token 提供了验证托管认证服务签发的 JSON Web Tokens 的功能。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager 负责验证认证服务（Supabase Auth）用共享密钥签发的 access token。
// 本服务不签发 token，注册/登录流程完全委托给托管认证。
type Manager struct {
	secretKey []byte
}

// Claims 是 access token 中我们关心的声明。
// Subject 即用户 ID。
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewManager 创建一个新的 Manager 实例。
func NewManager(secret string) *Manager {
	return &Manager{secretKey: []byte(secret)}
}

// Verify 解析并校验一个 token 字符串，返回其中的声明。
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) <= 0 {
		return nil, errors.New("token expired")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
