package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/SalahTracker/models"
	"github.com/SalahTracker/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const sessionTokenTTL = 24 * time.Hour

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("invalid or expired token")
)

// IDTokenVerifier is the part of *auth.Client used to accept Firebase sign-ins.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AccountService struct {
	users    repositories.UserStore
	secret   []byte
	firebase IDTokenVerifier
	welcome  func(email string, name string)
	now      func() time.Time
}

var accountService *AccountService

func InitAccountService(users repositories.UserStore, secret string, firebase IDTokenVerifier, email *EmailService) {
	accountService = NewAccountService(users, secret, firebase)
	if email != nil {
		accountService.welcome = func(to string, name string) {
			go func() {
				_ = email.SendWelcomeEmail(to, name)
			}()
		}
	}
	log.Info().Bool("firebase_auth", firebase != nil).Msg("Account service initialized")
}

func GetAccountService() *AccountService {
	return accountService
}

func NewAccountService(users repositories.UserStore, secret string, firebase IDTokenVerifier) *AccountService {
	return &AccountService{users: users, secret: []byte(secret), firebase: firebase, now: time.Now}
}

// Signup creates an account with a bcrypt password hash and a random uid.
func (s *AccountService) Signup(ctx context.Context, req models.UserSignup) (models.UserProfile, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.UserProfile{
		User_ID:         uuid.NewString(),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Password:        string(passwordHash),
		Display_Name:    req.DisplayName,
		Datetime_Create: s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return models.UserProfile{}, ErrEmailTaken
		}
		return models.UserProfile{}, persistence(err)
	}

	if s.welcome != nil {
		s.welcome(user.Email, user.Display_Name)
	}
	log.Info().Str("uid", user.User_ID).Msg("Account created")
	return user, nil
}

// Login checks the password and issues a session token.
func (s *AccountService) Login(ctx context.Context, req models.Login) (string, models.UserProfile, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, repositories.ErrNotFound) {
		return "", models.UserProfile{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", models.UserProfile{}, persistence(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", models.UserProfile{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", models.UserProfile{}, err
	}
	return token, user, nil
}

func (s *AccountService) IssueToken(user models.UserProfile) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("token signing secret not configured")
	}

	role := "user"
	if user.Admin {
		role = "admin"
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  user.User_ID,
		"exp":  s.now().Add(sessionTokenTTL).Unix(),
		"role": role,
	})

	token, err := generateToken.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Authenticate resolves a bearer token to a user and admin flag. Session
// tokens are tried first, then Firebase ID tokens when enabled.
func (s *AccountService) Authenticate(ctx context.Context, tokenString string) (models.UserProfile, bool, error) {
	if len(s.secret) > 0 {
		user, admin, err := s.authenticateSession(ctx, tokenString)
		if err == nil || s.firebase == nil || !errors.Is(err, ErrUnauthorized) {
			return user, admin, err
		}
	}

	if s.firebase == nil {
		return models.UserProfile{}, false, ErrUnauthorized
	}

	token, err := s.firebase.VerifyIDToken(ctx, tokenString)
	if err != nil {
		return models.UserProfile{}, false, ErrUnauthorized
	}

	user := models.UserProfile{User_ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		user.Display_Name = name
	}
	admin, _ := token.Claims["admin"].(bool)
	user.Admin = admin
	return user, admin, nil
}

func (s *AccountService) authenticateSession(ctx context.Context, tokenString string) (models.UserProfile, bool, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.UserProfile{}, false, ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.UserProfile{}, false, ErrUnauthorized
	}
	exp, ok := claims["exp"].(float64)
	if !ok || float64(s.now().Unix()) > exp {
		return models.UserProfile{}, false, ErrUnauthorized
	}
	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return models.UserProfile{}, false, ErrUnauthorized
	}

	user, err := s.users.GetUserByID(ctx, uid)
	if errors.Is(err, repositories.ErrNotFound) {
		return models.UserProfile{}, false, ErrUnauthorized
	}
	if err != nil {
		return models.UserProfile{}, false, persistence(err)
	}

	return user, claims["role"] == "admin", nil
}
