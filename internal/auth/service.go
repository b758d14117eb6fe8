package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/riddhima-gkmit/mindease-platform/internal/notify"
	"github.com/riddhima-gkmit/mindease-platform/pkg/logging"
)

// ErrInvalidCredentials is returned when email/password don't match.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

const resetTokenTTL = time.Hour

// Service implements registration, login, token refresh, and the email
// verification / password reset flows.
type Service struct {
	repo    *Repository
	tokens  *Tokens
	email   notify.EmailSender
	baseURL string
	logger  *logging.Logger
	now     func() time.Time
}

// NewService constructs the auth service. A nil email sender downgrades to
// the log-only stub.
func NewService(repo *Repository, tokens *Tokens, email notify.EmailSender, baseURL string, logger *logging.Logger) *Service {
	if repo == nil {
		panic("auth: repository required")
	}
	if tokens == nil {
		panic("auth: token issuer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if email == nil {
		email = notify.NewStubEmailSender(logger)
	}
	return &Service{
		repo:    repo,
		tokens:  tokens,
		email:   email,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Username  string `json:"username,omitempty"`
}

// Register creates the account and sends the verification email. Email
// delivery failure is logged, not fatal: the user can request another mail.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	username := in.Username
	if username == "" {
		username = strings.SplitN(in.Email, "@", 2)[0]
	}

	u := &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         in.Role,
		PasswordHash: string(hash),
	}
	verificationToken := uuid.NewString()
	if err := s.repo.Create(ctx, u, verificationToken); err != nil {
		return nil, err
	}

	msg := notify.VerificationEmail(s.baseURL, u.Email, u.FirstName, u.ID.String(), verificationToken)
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Warn("verification email not sent", "user_id", u.ID, "error", err)
	}
	s.logger.Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// LoginResult is the login response payload.
type LoginResult struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user"`
}

// Login verifies credentials and issues a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	access, refresh, err := s.tokens.IssuePair(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user logged in", "user_id", u.ID)
	return &LoginResult{Access: access, Refresh: refresh, User: u}, nil
}

// Refresh exchanges a refresh token for a new access token. Access tokens
// presented here are rejected.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, KindRefresh)
	if err != nil {
		return "", err
	}
	userID, _ := uuid.Parse(claims.UserID)
	// The account must still exist; a deleted user keeps a valid-looking token.
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return "", ErrInvalidToken
	}
	return s.tokens.IssueAccess(userID, claims.Role)
}

// Profile returns the user's account record.
func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateProfile rewrites the mutable profile fields.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*User, error) {
	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Username == "" {
		in.Username = current.Username
	}
	return s.repo.UpdateProfile(ctx, userID, in.Username, in.FirstName, in.LastName)
}

// VerifyEmail completes the email verification link.
func (s *Service) VerifyEmail(ctx context.Context, uid, token string) error {
	id, err := uuid.Parse(uid)
	if err != nil {
		return ErrUserNotFound
	}
	return s.repo.MarkVerified(ctx, id, token)
}

// RequestPasswordReset issues a reset token and mails the link. Unknown
// emails are deliberately silent so the endpoint can't be used to probe for
// accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.repo.SetResetToken(ctx, u.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}
	msg := notify.PasswordResetEmail(s.baseURL, u.Email, u.FirstName, u.ID.String(), token)
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Warn("password reset email not sent", "user_id", u.ID, "error", err)
	}
	return nil
}

// ConfirmPasswordReset sets the new password when the uid/token pair is
// valid and unexpired.
func (s *Service) ConfirmPasswordReset(ctx context.Context, uid, token, newPassword string) error {
	id, err := uuid.Parse(uid)
	if err != nil {
		return ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	return s.repo.ResetPassword(ctx, id, token, string(hash), s.now())
}
