package users_testing

import (
	"context"
	"fmt"
	"time"

	users_dto "picktask-backend/internal/features/users/dto"
	users_models "picktask-backend/internal/features/users/models"
	users_repositories "picktask-backend/internal/features/users/repositories"
	users_services "picktask-backend/internal/features/users/services"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const TestUserPassword = "testpassword123"

// CreateTestUser stores an active user with a unique handle and returns a
// signed-in token for it.
func CreateTestUser() *users_dto.SignInResponseDTO {
	return CreateTestUserWithUsername("user-" + uuid.NewString()[:8])
}

func CreateTestUserWithUsername(username string) *users_dto.SignInResponseDTO {
	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(TestUserPassword),
		bcrypt.MinCost,
	)
	if err != nil {
		panic(err)
	}

	hashedPasswordStr := string(hashedPassword)

	user := &users_models.User{
		ID:                   uuid.New(),
		Username:             username,
		Email:                fmt.Sprintf("%s@test.picktask.local", username),
		Name:                 "Test " + username,
		IsActive:             true,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: time.Now().UTC(),
		CreatedAt:            time.Now().UTC(),
	}

	if err := users_repositories.GetUserRepository().CreateUser(user); err != nil {
		panic(err)
	}

	return SignInTestUser(user)
}

// SignInTestUser issues a new token, and therefore a new session, for the user.
func SignInTestUser(user *users_models.User) *users_dto.SignInResponseDTO {
	response, err := users_services.GetUserService().GenerateAccessToken(user)
	if err != nil {
		panic(err)
	}

	return response
}

func GetTestUser(userID uuid.UUID) *users_models.User {
	user, err := users_repositories.GetUserRepository().GetUserByID(userID)
	if err != nil {
		panic(err)
	}

	return user
}

// GetSessionID returns the session id carried by the token.
func GetSessionID(token string) string {
	_, sessionID, err := users_services.GetUserService().GetUserFromToken(context.Background(), token)
	if err != nil {
		panic(err)
	}

	return sessionID
}
