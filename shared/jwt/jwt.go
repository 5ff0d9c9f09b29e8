package jwt

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yamdb-dev/yamdb/shared/domain"
	internal_errors "github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
)

type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (*Claims, error)
}

// Claims carried by an access token: sub is the user id
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserId() (domain.UserId, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Actor as asserted by the token. Username is not part of the claims.
func (c *Claims) Actor() (domain.Actor, error) {
	id, err := c.UserId()
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{Id: id, Role: c.Role}, nil
}

type Jwt struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for both issuing and verifying
func (j *Jwt) WithClock(now func() time.Time) *Jwt {
	j.now = now
	return j
}

func (j *Jwt) TTL() time.Duration {
	return j.ttl
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	now := j.now()
	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.Id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		logger.Log.Error("failed to sign token", "user_id", user.Id, "error", err)
		return "", errors.New("can't create token")
	}
	return tokenString, nil
}

// DecodeToken checks signature, algorithm and expiry. Every failure is Unauthorized.
func (j *Jwt) DecodeToken(jwtStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(jwtStr, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		logger.Log.Debug("token rejected", "error", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal_errors.Unauthorized("Token has expired")
		}
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	if !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid token")
	}
	if _, err := claims.UserId(); err != nil {
		return nil, internal_errors.Unauthorized("Invalid token subject")
	}
	return claims, nil
}
