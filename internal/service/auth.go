package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dormscout/dormscout/internal/config"
	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/rbac"
	"github.com/dormscout/dormscout/internal/repository"
	"github.com/dormscout/dormscout/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrDomainNotAllowed   = errors.New("email domain is not a supported school")
	ErrConsentNotAccepted = errors.New("terms of service and privacy policy must be accepted")
	ErrInvalidToken       = errors.New("invalid or expired verification link")
)

type AuthService struct {
	userRepository    repository.UserRepository
	profileRepository repository.ProfileRepository
	schoolRepository  repository.SchoolRepository
	tokenRepository   repository.TokenRepository
	consentService    *ConsentService
	emailService      *EmailService
	cfg               *config.Config
}

func NewAuthService(
	userRepository repository.UserRepository,
	profileRepository repository.ProfileRepository,
	schoolRepository repository.SchoolRepository,
	tokenRepository repository.TokenRepository,
	consentService *ConsentService,
	emailService *EmailService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepository:    userRepository,
		profileRepository: profileRepository,
		schoolRepository:  schoolRepository,
		tokenRepository:   tokenRepository,
		consentService:    consentService,
		emailService:      emailService,
		cfg:               cfg,
	}
}

// SignupInput carries everything the signup flow needs. AcceptTOS and
// AcceptPrivacy are explicit checkboxes; both must be true.
type SignupInput struct {
	Email         string
	Password      string
	AcceptTOS     bool
	AcceptPrivacy bool
	IPAddress     string
	UserAgent     string
}

// Signup validates every gate before touching the database: email shape,
// password strength, school-domain allowlist, and consent checkboxes.
// Bypass addresses skip the domain check only; every other gate still
// applies to them.
func (s *AuthService) Signup(in SignupInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))

	if err := validation.ValidateEmail(email); err != nil {
		return nil, ErrInvalidEmail
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, err
	}

	domain := validation.EmailDomain(email)
	if !s.cfg.BypassEmail(email) && !s.cfg.DomainAllowed(domain) {
		return nil, ErrDomainNotAllowed
	}

	if !in.AcceptTOS || !in.AcceptPrivacy {
		return nil, ErrConsentNotAccepted
	}

	hashedPassword, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: &hashedPassword,
		CreatedAt:    now,
	}

	err = s.userRepository.Create(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	profile := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Email:     email,
		Role:      rbac.RoleUser,
		SchoolID:  s.resolveSchoolID(domain),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.profileRepository.Create(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	_, err = s.consentService.Record(user.ID, in.IPAddress, in.UserAgent)
	if err != nil {
		return nil, err
	}

	err = s.sendVerification(user)
	if err != nil {
		slog.Error("failed to send verification email", "error", err, "email", email)
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	slog.Info("new user signed up", "user_id", user.ID, "email", email, "domain", domain)
	return user, nil
}

// resolveSchoolID maps an email domain to a school when one claims it.
// An unclaimed domain (bypass accounts) leaves the profile schoolless.
func (s *AuthService) resolveSchoolID(domain string) *string {
	school, err := s.schoolRepository.ByDomain(domain)
	if err != nil {
		if !errors.Is(err, repository.ErrSchoolNotFound) {
			slog.Warn("school lookup failed", "error", err, "domain", domain)
		}
		return nil
	}
	return &school.ID
}

func (s *AuthService) sendVerification(user *model.User) error {
	err := s.tokenRepository.DeleteByUserAndType(user.ID, model.TokenTypeEmailVerify)
	if err != nil {
		slog.Warn("failed to delete old verification tokens", "error", err, "user_id", user.ID)
	}

	verificationToken, err := s.GenerateToken()
	if err != nil {
		return err
	}

	token := &model.Token{
		UserID:    user.ID,
		Type:      model.TokenTypeEmailVerify,
		Token:     verificationToken,
		ExpiresAt: time.Now().Add(s.cfg.TokenEmailVerifyExpiry),
	}
	err = s.tokenRepository.Create(token)
	if err != nil {
		return err
	}

	return s.emailService.SendVerificationEmail(user.Email, verificationToken)
}

func (s *AuthService) Login(email, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepository.ByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	err = s.ComparePassword(password, *user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.EmailVerifiedAt == nil {
		return nil, ErrEmailNotVerified
	}

	return user, nil
}

// VerifyEmail consumes a single-use verification token. Only the first
// request succeeds; replays get ErrInvalidToken.
func (s *AuthService) VerifyEmail(token string) (*model.User, error) {
	tokenModel, err := s.tokenRepository.ConsumeToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if tokenModel.Type != model.TokenTypeEmailVerify {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepository.ByID(tokenModel.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if user.EmailVerifiedAt == nil {
		now := time.Now()
		user.EmailVerifiedAt = &now
		err = s.userRepository.Update(user)
		if err != nil {
			return nil, fmt.Errorf("failed to verify email: %w", err)
		}

		err = s.profileRepository.MarkVerified(user.ID, now)
		if err != nil {
			slog.Warn("failed to mark profile verified", "error", err, "user_id", user.ID)
		}

		err = s.emailService.SendWelcomeEmail(user.Email)
		if err != nil {
			slog.Warn("failed to send welcome email", "error", err, "email", user.Email)
		}
	}

	slog.Info("email verified", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// UserByID loads a user for context injection after JWT verification.
func (s *AuthService) UserByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *AuthService) ProfileByUserID(userID string) (*model.Profile, error) {
	return s.profileRepository.ByUserID(userID)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (s *AuthService) GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func (s *AuthService) GenerateJWT(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.cfg.JWTExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string, expiry time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  expiry,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) JWTExpiry() time.Duration {
	return s.cfg.JWTExpiry
}
