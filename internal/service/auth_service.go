package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campusnotes/internal/auth"
	"campusnotes/internal/mailer"
	"campusnotes/internal/model"
	"campusnotes/internal/otp"
	"campusnotes/internal/repository"
)

const bcryptCost = 10

var (
	// ErrUserAlreadyExists is returned when username or email is taken.
	ErrUserAlreadyExists = errors.New("user or email already exists")
	// ErrInvalidCredentials is returned for unknown email, wrong password, or an
	// unverified account. One error for all three, so responses carry no
	// account-enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when no account matches the email.
	ErrUserNotFound = errors.New("no account found for that email")
	// ErrAlreadyVerified is returned when verifying an already-verified account.
	ErrAlreadyVerified = errors.New("account is already verified")
	// ErrInvalidOTP is returned for a missing, mismatched, or expired passcode.
	ErrInvalidOTP = errors.New("invalid or expired verification code")
)

// AuthService implements the signup / verification / login / logout /
// password-reset flow.
type AuthService interface {
	Signup(ctx context.Context, username, email, password, role string) (*model.User, error)
	VerifyOTP(ctx context.Context, email, code string) (token string, err error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, session *auth.Session, err error)
	Logout(ctx context.Context, bearerToken, sessionID string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	users       repository.UserRepository
	jwtService  *auth.JWTService
	revocations auth.RevocationList
	sessions    auth.SessionStore
	mail        mailer.Mailer
	otpTTL      time.Duration
}

// NewAuthService wires the auth flow's collaborators together. The revocation
// list and session store are injected so deployments (and tests) can choose
// their backing.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	revocations auth.RevocationList,
	sessions auth.SessionStore,
	mail mailer.Mailer,
	otpTTL time.Duration,
) AuthService {
	return &authService{
		users:       users,
		jwtService:  jwtService,
		revocations: revocations,
		sessions:    sessions,
		mail:        mail,
		otpTTL:      otpTTL,
	}
}

// Signup validates input, creates an unverified account, and emails a
// passcode. No session or token is issued here: the account is unusable until
// OTP verification.
func (s *authService) Signup(ctx context.Context, username, email, password, role string) (*model.User, error) {
	if err := auth.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := auth.ValidateCollegeEmail(email); err != nil {
		return nil, err
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := auth.ValidateRole(role); err != nil {
		return nil, err
	}
	if role == "" {
		role = model.RoleStudent
	}

	if err := s.checkAvailability(ctx, username, email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := otp.Generate(s.otpTTL)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Verified:     false,
		OTP:          &code.Value,
		OTPExpiry:    &code.ExpiresAt,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent signups racing on the same email or username are
		// disambiguated by the unique index at write time.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sendOTP(user, code); err != nil {
		return nil, fmt.Errorf("send verification mail: %w", err)
	}

	return user, nil
}

func (s *authService) checkAvailability(ctx context.Context, username, email string) error {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return ErrUserAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check email: %w", err)
	}

	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return ErrUserAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

func (s *authService) sendOTP(user *model.User, code otp.Code) error {
	minutes := int(s.otpTTL.Minutes())
	return s.mail.Send(user.Email, mailer.OTPSubject, mailer.OTPBody(user.Username, code.Value, minutes))
}

// VerifyOTP is the only path from unverified to verified. On success the
// passcode is cleared and the first bearer token is issued.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if user.Verified {
		return "", ErrAlreadyVerified
	}
	if err := checkOTP(user, code); err != nil {
		return "", err
	}

	user.Verified = true
	user.OTP = nil
	user.OTPExpiry = nil
	if err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("mark verified: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// checkOTP enforces the single-use passcode invariants: present, matching,
// and unexpired. It never mutates the user.
func checkOTP(user *model.User, code string) error {
	if user.OTP == nil || user.OTPExpiry == nil {
		return ErrInvalidOTP
	}
	if *user.OTP != code {
		return ErrInvalidOTP
	}
	if otp.Expired(*user.OTPExpiry, time.Now()) {
		return ErrInvalidOTP
	}
	return nil
}

// Login authenticates a verified account, establishing both a server-side
// session and an independent bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, *auth.Session, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, nil, ErrInvalidCredentials
		}
		return "", nil, nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, nil, ErrInvalidCredentials
	}
	if !user.Verified {
		return "", nil, nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		return "", nil, nil, fmt.Errorf("generate token: %w", err)
	}

	session, err := s.sessions.Create(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, nil, fmt.Errorf("create session: %w", err)
	}

	return token, user, session, nil
}

// Logout revokes the presented bearer token and destroys the session.
// Idempotent: absent token and session still succeed.
func (s *authService) Logout(ctx context.Context, bearerToken, sessionID string) error {
	if bearerToken != "" {
		if err := s.revocations.Add(ctx, bearerToken); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}
	if sessionID != "" {
		s.sessions.Destroy(sessionID)
	}
	return nil
}

// ForgotPassword issues and emails a fresh passcode, overwriting any prior
// unconsumed one. Calling it again acts as a resend.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := otp.Generate(s.otpTTL)
	if err != nil {
		return err
	}

	user.OTP = &code.Value
	user.OTPExpiry = &code.ExpiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.sendOTP(user, code); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword replaces the password hash after checking the passcode. The
// composite policy applies to the new password, same as signup.
func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := checkOTP(user, code); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.OTP = nil
	user.OTPExpiry = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	slog.Info("password reset completed", "user_id", user.ID)
	return nil
}
