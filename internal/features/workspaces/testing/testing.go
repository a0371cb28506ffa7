package workspaces_testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"picktask-backend/internal/features/audit_logs"
	users_dto "picktask-backend/internal/features/users/dto"
	users_enums "picktask-backend/internal/features/users/enums"
	users_middleware "picktask-backend/internal/features/users/middleware"
	users_services "picktask-backend/internal/features/users/services"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_dto "picktask-backend/internal/features/workspaces/dto"
	workspaces_models "picktask-backend/internal/features/workspaces/models"
	workspaces_repositories "picktask-backend/internal/features/workspaces/repositories"
	workspaces_services "picktask-backend/internal/features/workspaces/services"
	"picktask-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func CreateTestRouter(controllers ...ControllerInterface) *gin.Engine {
	return CreateTestRouterWithMiddlewares(nil, controllers...)
}

// CreateTestRouterWithMiddlewares registers the controllers behind the auth
// middleware followed by the given middlewares.
func CreateTestRouterWithMiddlewares(
	middlewares []gin.HandlerFunc,
	controllers ...ControllerInterface,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(users_services.GetUserService()))
	protected.Use(middlewares...)

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	audit_logs.SetupDependencies()
	workspaces_services.SetupDependencies()

	return router
}

// CreateTestWorkspace creates the workspace through the service, so the
// admin membership, default columns and activity entry exist as in production.
func CreateTestWorkspace(
	name string,
	owner *users_dto.SignInResponseDTO,
) *workspaces_models.Workspace {
	response, err := workspaces_services.GetWorkspaceService().CreateWorkspace(
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: name},
		users_testing.GetTestUser(owner.UserID),
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create workspace: %v", err))
	}

	return &workspaces_models.Workspace{
		ID:        response.ID,
		Name:      response.Name,
		CreatedBy: response.CreatedBy,
		CreatedAt: response.CreatedAt,
	}
}

func CreateTestWorkspaceViaAPI(
	name string,
	owner *users_dto.SignInResponseDTO,
	router *gin.Engine,
) *workspaces_models.Workspace {
	request := workspaces_dto.CreateWorkspaceRequestDTO{Name: name}
	w := MakeAPIRequest(router, "POST", "/api/v1/workspace/create", "Bearer "+owner.Token, request)

	if w.Code != http.StatusOK {
		panic(
			fmt.Sprintf(
				"Failed to create workspace. Status: %d, Body: %s",
				w.Code,
				w.Body.String(),
			),
		)
	}

	var response workspaces_dto.WorkspaceResponseDTO
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		panic(err)
	}

	return &workspaces_models.Workspace{
		ID:        response.ID,
		Name:      response.Name,
		CreatedBy: response.CreatedBy,
		CreatedAt: response.CreatedAt,
	}
}

// AddMemberToWorkspace stores a membership directly, bypassing the invite flow.
func AddMemberToWorkspace(
	workspace *workspaces_models.Workspace,
	member *users_dto.SignInResponseDTO,
	role users_enums.WorkspaceRole,
) *workspaces_models.WorkspaceMembership {
	membershipRepository := &workspaces_repositories.MembershipRepository{}

	membership := &workspaces_models.WorkspaceMembership{
		UserID:      member.UserID,
		WorkspaceID: workspace.ID,
		Role:        role,
	}

	if err := membershipRepository.CreateMembership(storage.GetDb(), membership); err != nil {
		panic("Failed to add member to workspace: " + err.Error())
	}

	return membership
}

// GetMembership returns nil when the user is not a member.
func GetMembership(workspaceID, userID uuid.UUID) *workspaces_models.WorkspaceMembership {
	membershipRepository := &workspaces_repositories.MembershipRepository{}

	membership, err := membershipRepository.GetMembershipByUserAndWorkspace(
		storage.GetDb(),
		userID,
		workspaceID,
	)
	if err != nil {
		panic("Failed to get membership: " + err.Error())
	}

	return membership
}

func MakeAPIRequest(
	router *gin.Engine,
	method, url, authToken string,
	body any,
) *httptest.ResponseRecorder {
	var requestBody *bytes.Buffer
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	} else {
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, requestBody)
	if err != nil {
		panic(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", authToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type SentInvitation struct {
	Email         string
	WorkspaceID   uuid.UUID
	WorkspaceName string
	Role          users_enums.WorkspaceRole
}

// RecordingInvitationSender keeps invitations in memory instead of sending
// emails.
type RecordingInvitationSender struct {
	mu   sync.Mutex
	sent []SentInvitation
}

func (s *RecordingInvitationSender) SendWorkspaceInvitation(
	email string,
	workspaceID uuid.UUID,
	workspaceName string,
	role users_enums.WorkspaceRole,
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, SentInvitation{email, workspaceID, workspaceName, role})
}

func (s *RecordingInvitationSender) Sent() []SentInvitation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SentInvitation(nil), s.sent...)
}

// UseRecordingInvitationSender swaps the membership service's sender and
// returns a function restoring the previous one.
func UseRecordingInvitationSender() (*RecordingInvitationSender, func()) {
	previous := workspaces_services.GetMembershipService().GetInvitationSender()

	sender := &RecordingInvitationSender{}
	workspaces_services.GetMembershipService().SetInvitationSender(sender)

	return sender, func() {
		workspaces_services.GetMembershipService().SetInvitationSender(previous)
	}
}
