package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims JWT声明，subject为用户ID字符串
type TokenClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器，负责签发和校验访问/刷新令牌
type JWTManager struct {
	secretKey       string
	accessDuration  time.Duration
	refreshDuration time.Duration
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey string, accessDuration, refreshDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:       secretKey,
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}
}

// GenerateAccessToken 生成访问令牌（短期）
func (manager *JWTManager) GenerateAccessToken(userID uint) (string, error) {
	return manager.generate(userID, manager.accessDuration)
}

// GenerateRefreshToken 生成刷新令牌（长期）
func (manager *JWTManager) GenerateRefreshToken(userID uint) (string, error) {
	return manager.generate(userID, manager.refreshDuration)
}

func (manager *JWTManager) generate(userID uint, duration time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "DocSpace",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(manager.secretKey))
}

// VerifyToken 验证令牌：签名错误、格式错误或已过期都返回错误
func (manager *JWTManager) VerifyToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// 验证签名方法
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("意外的签名方法")
			}
			return []byte(manager.secretKey), nil
		},
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, errors.New("无法解析token声明")
	}

	// 兼容仅携带subject的令牌
	if claims.UserID == 0 && claims.Subject != "" {
		id, err := strconv.ParseUint(claims.Subject, 10, 32)
		if err != nil {
			return nil, errors.New("token subject无效")
		}
		claims.UserID = uint(id)
	}

	if claims.UserID == 0 {
		return nil, errors.New("token缺少用户标识")
	}

	return claims, nil
}

// GetAccessDuration 获取访问令牌有效期
func (manager *JWTManager) GetAccessDuration() time.Duration {
	return manager.accessDuration
}

// GetRefreshDuration 获取刷新令牌有效期
func (manager *JWTManager) GetRefreshDuration() time.Duration {
	return manager.refreshDuration
}
