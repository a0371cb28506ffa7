package users_services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"picktask-backend/internal/config"
	"picktask-backend/internal/features/sessions"
	users_dto "picktask-backend/internal/features/users/dto"
	users_interfaces "picktask-backend/internal/features/users/interfaces"
	users_models "picktask-backend/internal/features/users/models"
	users_repositories "picktask-backend/internal/features/users/repositories"
	"picktask-backend/internal/util/apperrors"
	"picktask-backend/internal/util/logger"
)

const tokenLifetime = 14 * 24 * time.Hour

type UserService struct {
	userRepository        *users_repositories.UserRepository
	auditLogWriter        users_interfaces.AuditLogWriter
	registrationListeners []users_interfaces.UserRegistrationListener
}

func (s *UserService) SetAuditLogWriter(writer users_interfaces.AuditLogWriter) {
	s.auditLogWriter = writer
}

func (s *UserService) AddUserRegistrationListener(
	listener users_interfaces.UserRegistrationListener,
) {
	for _, existing := range s.registrationListeners {
		if existing == listener {
			return
		}
	}

	s.registrationListeners = append(s.registrationListeners, listener)
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) (*users_models.User, error) {
	username := strings.TrimSpace(request.Username)
	email := strings.ToLower(strings.TrimSpace(request.Email))

	existingUser, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, apperrors.Validation("A user with that username already exists")
	}

	existingUser, err = s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, apperrors.Validation("A user with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Username:             username,
		Email:                email,
		Name:                 strings.TrimSpace(request.Name),
		IsActive:             true,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.writeAuditLog(fmt.Sprintf("registered with email %s", user.Email), &user.ID)

	for _, listener := range s.registrationListeners {
		if err := listener.OnUserRegistered(user); err != nil {
			logger.GetLogger().Error(
				"Registration listener failed",
				"userId", user.ID,
				"error", err,
			)
		}
	}

	return user, nil
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
) (*users_dto.SignInResponseDTO, error) {
	user, err := s.findUserByLogin(request.Username)
	if err != nil {
		return nil, err
	}

	if user == nil || !user.HasPassword() {
		return nil, apperrors.Validation("Invalid username or password")
	}

	if !user.IsActive {
		return nil, apperrors.AccessDenied("user account is deactivated")
	}

	err = bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password))
	if err != nil {
		return nil, apperrors.Validation("Invalid username or password")
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.writeAuditLog("signed in", &user.ID)

	return response, nil
}

func (s *UserService) SignOut(ctx context.Context, sessionID string) error {
	if err := sessions.GetSessionStore().Revoke(ctx, sessionID, tokenLifetime); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}

	return nil
}

// GetUserFromToken validates the bearer token and returns its user together
// with the session id the token was issued for.
func (s *UserService) GetUserFromToken(
	ctx context.Context,
	token string,
) (*users_models.User, string, error) {
	secretKey := config.GetEnv().JWTSecret

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, "", errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, "", errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, "", errors.New("invalid token claims")
	}

	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return nil, "", errors.New("invalid token claims: missing session")
	}

	revoked, err := sessions.GetSessionStore().IsRevoked(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if revoked {
		return nil, "", errors.New("session has been signed out, please sign in again")
	}

	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return nil, "", err
	}

	if !user.IsActive {
		return nil, "", errors.New("user account is deactivated")
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, "", errors.New("invalid token claims: missing password creation time")
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)
	if !tokenPasswordTime.Truncate(time.Second).
		Equal(user.PasswordCreationTime.Truncate(time.Second)) {
		return nil, "", errors.New("password has been changed, please sign in again")
	}

	return user, sessionID, nil
}

// GenerateAccessToken issues a token bound to a fresh session.
func (s *UserService) GenerateAccessToken(
	user *users_models.User,
) (*users_dto.SignInResponseDTO, error) {
	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"sid":                  uuid.NewString(),
		"exp":                  now.Add(tokenLifetime).Unix(),
		"iat":                  now.Unix(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(config.GetEnv().JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    tokenString,
	}, nil
}

func (s *UserService) ChangeUserPasswordByUsername(username string, newPassword string) error {
	user, err := s.userRepository.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return apperrors.NotFound(fmt.Sprintf("user %s does not exist", username))
	}

	return s.ChangeUserPassword(user.ID, newPassword)
}

func (s *UserService) ChangeUserPassword(userID uuid.UUID, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.Validation("password must be at least 8 characters long")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.writeAuditLog("changed password", &userID)

	return nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUsersByIDs(userIDs []uuid.UUID) ([]*users_models.User, error) {
	return s.userRepository.GetUsersByIDs(userIDs)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetUserByUsername(username string) (*users_models.User, error) {
	return s.userRepository.GetUserByUsername(username)
}

func (s *UserService) GetCurrentUserProfile(
	user *users_models.User,
) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Name:      user.Name,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}

func (s *UserService) findUserByLogin(login string) (*users_models.User, error) {
	login = strings.TrimSpace(login)

	var (
		user *users_models.User
		err  error
	)

	if strings.Contains(login, "@") {
		user, err = s.userRepository.GetUserByEmail(login)
	} else {
		user, err = s.userRepository.GetUserByUsername(login)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (s *UserService) writeAuditLog(message string, userID *uuid.UUID) {
	if s.auditLogWriter == nil {
		return
	}

	s.auditLogWriter.WriteAuditLog(message, userID, nil)
}
