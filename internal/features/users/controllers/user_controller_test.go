package users_controllers

import (
	"context"
	"net/http"
	"testing"

	"picktask-backend/internal/features/sessions"
	users_dto "picktask-backend/internal/features/users/dto"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_services "picktask-backend/internal/features/users/services"
	users_testing "picktask-backend/internal/features/users/testing"
	test_utils "picktask-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	GetUserController().RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	GetUserController().RegisterProtectedRoutes(protected)

	return router
}

func Test_SignUp_ReturnsTokenForNewUser(t *testing.T) {
	router := createUserTestRouter()
	username := "signup-" + uuid.NewString()[:8]

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signup",
		"",
		users_dto.SignUpRequestDTO{
			Username: username,
			Email:    username + "@example.com",
			Password: "password123",
			Name:     "Sign Up",
		},
		http.StatusOK,
		&response,
	)

	assert.Equal(t, username, response.Username)
	assert.NotEmpty(t, response.Token)

	var profile users_dto.UserProfileResponseDTO
	test_utils.MakeGetRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+response.Token,
		http.StatusOK,
		&profile,
	)

	assert.Equal(t, response.UserID, profile.ID)
	assert.Equal(t, username+"@example.com", profile.Email)
}

func Test_SignUp_WithDuplicateUsername_ReturnsBadRequest(t *testing.T) {
	router := createUserTestRouter()
	existing := users_testing.CreateTestUser()

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signup",
		"",
		users_dto.SignUpRequestDTO{
			Username: existing.Username,
			Email:    "another-" + uuid.NewString()[:8] + "@example.com",
			Password: "password123",
		},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), "username already exists")
}

func Test_SignIn_WithValidAndInvalidPassword(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	var response users_dto.SignInResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{
			Username: user.Username,
			Password: users_testing.TestUserPassword,
		},
		http.StatusOK,
		&response,
	)
	assert.Equal(t, user.UserID, response.UserID)

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signin",
		"",
		users_dto.SignInRequestDTO{Username: user.Username, Password: "wrong-password"},
		http.StatusBadRequest,
	)
	assert.Contains(t, string(resp.Body), "Invalid username or password")
}

func Test_ProtectedRoute_WithoutToken_ReturnsUnauthorized(t *testing.T) {
	router := createUserTestRouter()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "", http.StatusUnauthorized)
	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer invalid-token",
		http.StatusUnauthorized,
	)
}

func Test_SignOut_ClearsSessionState(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	sessionID := captureSessionID(t, user.Token)
	store := sessions.GetSessionStore()
	require.NoError(
		t,
		store.Set(context.Background(), sessionID, sessions.KeyCurrentWorkspaceID, uuid.New()),
	)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signout",
		"Bearer "+user.Token,
		nil,
		http.StatusOK,
	)

	state, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentWorkspaceID)
}

func Test_SignOut_TokenNoLongerAuthenticates(t *testing.T) {
	router := createUserTestRouter()
	user := users_testing.CreateTestUser()

	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer "+user.Token, http.StatusOK)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/users/signout",
		"Bearer "+user.Token,
		nil,
		http.StatusOK,
	)

	test_utils.MakeGetRequest(
		t,
		router,
		"/api/v1/users/me",
		"Bearer "+user.Token,
		http.StatusUnauthorized,
	)

	other := users_testing.CreateTestUser()
	test_utils.MakeGetRequest(t, router, "/api/v1/users/me", "Bearer "+other.Token, http.StatusOK)
}

func captureSessionID(t *testing.T, token string) string {
	_, sessionID, err := users_services.GetUserService().GetUserFromToken(context.Background(), token)
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	return sessionID
}
