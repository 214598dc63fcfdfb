package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/auth"
	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/middleware"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
	"github.com/ryotashiba/project-management-api/internal/services"
)

// TaskHandlerTestSuite runs the task routes through the real router and
// bearer-token middleware.
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager

	alice *models.User // personal mode
	bob   *models.User // personal mode
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	users := repository.NewUserRepository(suite.db)
	tasks := repository.NewTaskRepository(suite.db)
	projects := repository.NewProjectRepository(suite.db)
	sprints := repository.NewSprintRepository(suite.db)

	tenants := services.NewTenantService(users)
	taskService := services.NewTaskService(tenants, tasks, projects, sprints, users)
	handler := NewTaskHandler(taskService, zerolog.Nop())

	suite.tokens = auth.NewTokenManager("test-secret", time.Hour)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	group := suite.router.Group("/api/tasks")
	group.Use(middleware.RequireAuth(suite.tokens))
	{
		group.POST("", handler.Create)
		group.GET("", handler.List)
		group.GET("/:id", handler.Get)
		group.PATCH("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
		group.POST("/:id/comments", handler.AddComment)
		group.GET("/:id/comments", handler.ListComments)
	}

	suite.alice = &models.User{Email: "alice@example.com", Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(suite.alice).Error)
	suite.bob = &models.User{Email: "bob@example.com", Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(suite.bob).Error)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) request(method, url string, body []byte, userID uint64) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	token, err := suite.tokens.Issue(userID)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) createTask(title string, userID uint64) *models.Task {
	task := &models.Task{
		Title:    title,
		Status:   models.TaskStatusTodo,
		Priority: models.TaskPriorityMedium,
		UserID:   userID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

// TestCreateAndListTasks tests the happy path including the pagination
// envelope
func (suite *TaskHandlerTestSuite) TestCreateAndListTasks() {
	w := suite.request("POST", "/api/tasks", []byte(`{"title": "Write report", "priority": "high"}`), suite.alice.ID)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("GET", "/api/tasks", nil, suite.alice.ID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Tasks      []models.Task `json:"tasks"`
			Pagination struct {
				Page  int   `json:"page"`
				Limit int   `json:"limit"`
				Total int64 `json:"total"`
			} `json:"pagination"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(suite.T(), response.Success)
	suite.Require().Len(response.Data.Tasks, 1)
	assert.Equal(suite.T(), "Write report", response.Data.Tasks[0].Title)
	assert.Equal(suite.T(), models.TaskPriorityHigh, response.Data.Tasks[0].Priority)
	assert.Equal(suite.T(), int64(1), response.Data.Pagination.Total)
}

// TestNoToken tests that the routes are closed without a bearer token
func (suite *TaskHandlerTestSuite) TestNoToken() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/tasks", nil)
	suite.router.ServeHTTP(w, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestGetTask_CrossUser tests that one personal user's task reads as missing
// to another
func (suite *TaskHandlerTestSuite) TestGetTask_CrossUser() {
	task := suite.createTask("Alice's task", suite.alice.ID)

	w := suite.request("GET", fmt.Sprintf("/api/tasks/%d", task.ID), nil, suite.bob.ID)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/tasks/%d", task.ID), nil, suite.alice.ID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestDeleteTask_CrossUser tests that a foreign delete answers 404 and the
// row is untouched
func (suite *TaskHandlerTestSuite) TestDeleteTask_CrossUser() {
	task := suite.createTask("Alice's task", suite.alice.ID)

	w := suite.request("DELETE", fmt.Sprintf("/api/tasks/%d", task.ID), nil, suite.bob.ID)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestUpdateTask_CrossUser tests that a foreign patch answers 404 and the
// title survives
func (suite *TaskHandlerTestSuite) TestUpdateTask_CrossUser() {
	task := suite.createTask("Original", suite.alice.ID)

	w := suite.request("PATCH", fmt.Sprintf("/api/tasks/%d", task.ID), []byte(`{"title": "Hijacked"}`), suite.bob.ID)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var reloaded models.Task
	suite.Require().NoError(suite.db.First(&reloaded, task.ID).Error)
	assert.Equal(suite.T(), "Original", reloaded.Title)
}

// TestTaskStatusFilter tests the status list filter
func (suite *TaskHandlerTestSuite) TestTaskStatusFilter() {
	suite.createTask("Todo task", suite.alice.ID)
	done := suite.createTask("Done task", suite.alice.ID)
	suite.Require().NoError(suite.db.Model(done).Update("status", models.TaskStatusDone).Error)

	w := suite.request("GET", "/api/tasks?status=done", nil, suite.alice.ID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Tasks []models.Task `json:"tasks"`
		} `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data.Tasks, 1)
	assert.Equal(suite.T(), "Done task", response.Data.Tasks[0].Title)
}

// TestComments_CrossUser tests that commenting on a foreign task is a 404
func (suite *TaskHandlerTestSuite) TestComments_CrossUser() {
	task := suite.createTask("Alice's task", suite.alice.ID)

	w := suite.request("POST", fmt.Sprintf("/api/tasks/%d/comments", task.ID), []byte(`{"body": "mine now"}`), suite.bob.ID)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request("POST", fmt.Sprintf("/api/tasks/%d/comments", task.ID), []byte(`{"body": "note to self"}`), suite.alice.ID)
	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.request("GET", fmt.Sprintf("/api/tasks/%d/comments", task.ID), nil, suite.alice.ID)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Data []models.Comment `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Data, 1)
	assert.Equal(suite.T(), "note to self", response.Data[0].Body)
}

// TestInvalidIDParam tests malformed path ids
func (suite *TaskHandlerTestSuite) TestInvalidIDParam() {
	w := suite.request("GET", "/api/tasks/abc", nil, suite.alice.ID)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeletedUserToken tests that a token for a vanished user is fatal
func (suite *TaskHandlerTestSuite) TestDeletedUserToken() {
	w := suite.request("GET", "/api/tasks", nil, 99999)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
