package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/flujoapp/flujo_backend/internal/apperrors"
	"github.com/flujoapp/flujo_backend/internal/core/domain"
	portssvc "github.com/flujoapp/flujo_backend/internal/core/ports/services"
	"github.com/flujoapp/flujo_backend/internal/dto"
	"github.com/flujoapp/flujo_backend/internal/handlers"
	"github.com/flujoapp/flujo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ProjectService ---
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, userID string) (*dto.ProjectSaveResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProjectSaveResult), args.Error(1)
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, userID, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, userID, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, userID, projectID string, req dto.UpdateProjectRequest) (*dto.ProjectSaveResult, error) {
	args := m.Called(ctx, userID, projectID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProjectSaveResult), args.Error(1)
}

func (m *MockProjectService) DeleteProject(ctx context.Context, userID, projectID string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}

func (m *MockProjectService) ListActivities(ctx context.Context, userID, projectID string, limit int, nextToken *string) ([]domain.ProjectActivity, *string, error) {
	args := m.Called(ctx, userID, projectID, limit, nextToken)
	var activities []domain.ProjectActivity
	if args.Get(0) != nil {
		activities = args.Get(0).([]domain.ProjectActivity)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return activities, next, args.Error(2)
}

// Ensure mock implements the interface
var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Test Suite ---
type ProjectHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockProjectService *MockProjectService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ProjectHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "flujo-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ProjectHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockProjectService = new(MockProjectService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterProjectRoutes(v1, suite.mockProjectService)
}

func (suite *ProjectHandlerTestSuite) doJSON(method, url, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	userID := uuid.NewString()
	req := dto.CreateProjectRequest{
		Name:        "Website redesign",
		TotalAmount: decimal.NewFromInt(5000),
		StartDate:   "2025-08-01",
	}
	saved := &dto.ProjectSaveResult{
		Project: domain.Project{
			ProjectID:   uuid.NewString(),
			Name:        req.Name,
			Status:      domain.StatusInquiry,
			TotalAmount: req.TotalAmount,
			StartDate:   req.StartDate,
			UserID:      userID,
		},
	}

	suite.mockProjectService.On("CreateProject",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateProjectRequest) bool { return r.Name == req.Name }),
		userID,
	).Return(saved, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/projects", suite.generateTestToken(userID), req)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProjectSaveResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(saved.Project.ProjectID, resp.Project.ProjectID)
	suite.Equal("inquiry", resp.Project.Status)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MissingToken() {
	w := suite.doJSON(http.MethodPost, "/api/v1/projects", "", dto.CreateProjectRequest{Name: "x"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockProjectService.AssertNotCalled(suite.T(), "CreateProject")
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MalformedDateRejectedByBinding() {
	userID := uuid.NewString()
	body := map[string]any{"name": "Logo", "startDate": "01-08-2025"}

	w := suite.doJSON(http.MethodPost, "/api/v1/projects", suite.generateTestToken(userID), body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProjectService.AssertNotCalled(suite.T(), "CreateProject")
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_ValidationError() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	name := ""
	req := dto.UpdateProjectRequest{Name: &name}

	suite.mockProjectService.On("UpdateProject", mock.Anything, userID, projectID, mock.Anything).
		Return(nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/projects/"+projectID, suite.generateTestToken(userID), req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_BrokenContactReference() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	contactID := uuid.NewString()

	suite.mockProjectService.On("UpdateProject", mock.Anything, userID, projectID, mock.Anything).
		Return(nil, fmt.Errorf("%w: contact %s referenced by this project no longer exists", apperrors.ErrBrokenReference, contactID)).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/projects/"+projectID, suite.generateTestToken(userID), dto.UpdateProjectRequest{})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Contains(w.Body.String(), contactID)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_ReturnsReconciliationEffects() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	saved := &dto.ProjectSaveResult{
		Project: domain.Project{ProjectID: projectID, Name: "Brand refresh", Status: domain.StatusCompleted, TotalAmount: decimal.NewFromInt(2000), UserID: userID},
		Reconciliation: &domain.ReconciliationResult{
			Created: []domain.Transaction{{
				TransactionID: uuid.NewString(),
				Type:          domain.TypeIncome,
				Title:         "Project Payment: Brand refresh",
				Amount:        decimal.NewFromInt(2000),
			}},
		},
	}

	suite.mockProjectService.On("UpdateProject", mock.Anything, userID, projectID, mock.Anything).
		Return(saved, nil).Once()

	w := suite.doJSON(http.MethodPut, "/api/v1/projects/"+projectID, suite.generateTestToken(userID), dto.UpdateProjectRequest{})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProjectSaveResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.Reconciliation)
	suite.Len(resp.Reconciliation.Created, 1)
	suite.Equal("Project Payment: Brand refresh", resp.Reconciliation.Created[0].Title)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestGetProject_NotFound() {
	userID := uuid.NewString()
	projectID := uuid.NewString()

	suite.mockProjectService.On("GetProjectByID", mock.Anything, userID, projectID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/projects/"+projectID, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockProjectService.AssertExpectations(suite.T())
}

func (suite *ProjectHandlerTestSuite) TestListActivities_PassesPaginationThrough() {
	userID := uuid.NewString()
	projectID := uuid.NewString()
	token := "b64token"
	next := "b64next"
	activities := []domain.ProjectActivity{{
		ActivityID: uuid.NewString(),
		ProjectID:  projectID,
		Action:     "status_changed",
		Detail:     "quotation -> invoice",
		UserID:     userID,
	}}

	suite.mockProjectService.On("ListActivities", mock.Anything, userID, projectID, 5,
		mock.MatchedBy(func(t *string) bool { return t != nil && *t == token }),
	).Return(activities, &next, nil).Once()

	url := fmt.Sprintf("/api/v1/projects/%s/activities?limit=5&nextToken=%s", projectID, token)
	w := suite.doJSON(http.MethodGet, url, suite.generateTestToken(userID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp struct {
		Activities []dto.ActivityResponse `json:"activities"`
		NextToken  *string                `json:"nextToken"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Activities, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
	suite.mockProjectService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestProjectHandler(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
