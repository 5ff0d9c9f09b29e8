package service

import (
	"context"
	"fmt"

	"github.com/yamdb-dev/yamdb/backend/internal/utils/email"
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
	"github.com/yamdb-dev/yamdb/shared/logger"
	"github.com/yamdb-dev/yamdb/shared/middleware/metrics"
)

type AuthService interface {
	Signup(ctx context.Context, username domain.Username, email domain.Email) (domain.User, error)
	Token(ctx context.Context, username domain.Username, confirmationCode string) (string, error)
}

// Registry is the part of the identity registry the auth flow needs
type Registry interface {
	GetOrCreate(ctx context.Context, username domain.Username, email domain.Email) (domain.User, bool, error)
	FindByUsername(ctx context.Context, username domain.Username) (domain.User, error)
}

type CodeIssuer interface {
	Issue(user domain.User) string
	Verify(user domain.User, code string) bool
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

// Mailer queues a message for background delivery and never blocks
type Mailer interface {
	Enqueue(msg email.Message) bool
}

// Auth drives signup and token exchange:
// unregistered -> pending confirmation (signup) -> authenticated (token).
// It keeps no state of its own.
type Auth struct {
	users  Registry
	codes  CodeIssuer
	jwt    Jwt
	mailer Mailer
}

func NewAuth(users Registry, codes CodeIssuer, jwt Jwt, mailer Mailer) *Auth {
	return &Auth{
		users:  users,
		codes:  codes,
		jwt:    jwt,
		mailer: mailer,
	}
}

const confirmationSubject = "YaMDb confirmation code"

// Signup registers the pair if needed and mails a fresh confirmation code.
// Repeating it with the same pair is safe and simply sends another code.
// Delivery problems are logged and never fail the signup.
func (a *Auth) Signup(ctx context.Context, username domain.Username, emailAddr domain.Email) (domain.User, error) {
	user, created, err := a.users.GetOrCreate(ctx, username, emailAddr)
	if err != nil {
		return domain.User{}, err
	}
	metrics.Signup(created)

	code := a.codes.Issue(user)
	body := fmt.Sprintf("Hello, %s!\n\nYour confirmation code: %s\n\nExchange it for an access token at /token.\nIf you did not request this, please ignore this email.\n", user.Username, code)
	if !a.mailer.Enqueue(email.Message{To: user.Email, Subject: confirmationSubject, Body: body}) {
		logger.Log.Warn("confirmation code not queued", "user_id", user.Id)
	}
	return user, nil
}

// Token exchanges a confirmation code for an access token
func (a *Auth) Token(ctx context.Context, username domain.Username, confirmationCode string) (string, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !a.codes.Verify(user, confirmationCode) {
		metrics.ConfirmationFailed()
		logger.Log.Info("invalid confirmation code", "user_id", user.Id)
		return "", errors.Validation("confirmation_code: invalid or expired confirmation code")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return "", err
	}
	metrics.TokenIssued()
	return token, nil
}
