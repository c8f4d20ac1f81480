package services

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"parley-chat/config"
	"parley-chat/internal/domain/user"
	"parley-chat/internal/repository"
	parley_errors "parley-chat/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	User        UserInfo
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AccessClaims struct {
	jwt.RegisteredClaims
}

// Register creates a new account. No token is issued; the client logs in
// afterwards.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (UserInfo, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return UserInfo{}, parley_errors.ErrInvalidInput
	}

	if err := s.ensureIdentityAvailable(ctx, in.Email, in.Username); err != nil {
		return UserInfo{}, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return UserInfo{}, err
	}

	newUser := &user.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return UserInfo{}, err
	}

	return toUserInfo(*newUser), nil
}

// Login checks credentials and issues a signed access token. Unknown email
// and wrong password both come back as ErrUnauthorized so the response does
// not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return LoginResult{}, parley_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, parley_errors.ErrNotFound) {
			return LoginResult{}, parley_errors.ErrUnauthorized
		}
		return LoginResult{}, err
	}

	if err := comparePassword(u.PasswordHash, in.Password); err != nil {
		return LoginResult{}, parley_errors.ErrUnauthorized
	}

	accessToken, expiresIn, err := s.newAccessToken(u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
		User:        toUserInfo(u),
	}, nil
}

// ParseAccessToken validates the bearer token and returns the user id it
// was issued for.
func (s *AuthService) ParseAccessToken(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, parley_errors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, parley_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, parley_errors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return 0, parley_errors.ErrUnauthorized
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, parley_errors.ErrUnauthorized
	}

	return uint(userID), nil
}

func (s *AuthService) ensureIdentityAvailable(ctx context.Context, email, username string) error {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return parley_errors.ErrAlreadyExists
	} else if !errors.Is(err, parley_errors.ErrNotFound) {
		return err
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return parley_errors.ErrAlreadyExists
	} else if !errors.Is(err, parley_errors.ErrNotFound) {
		return err
	}

	return nil
}

func (s *AuthService) newAccessToken(userID uint) (string, int64, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}

	return signed, int64(s.accessTTL.Seconds()), nil
}

// HTTPStatus maps service errors to response status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, parley_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, parley_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, parley_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, parley_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, parley_errors.ErrAlreadyExists), errors.Is(err, parley_errors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type ctxKey string

var userIDKey ctxKey = "user_id"

func WithUserContext(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func toUserInfo(u user.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
