package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

// TimeEntryServiceTestSuite defines the test suite for TimeEntryService
type TimeEntryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TimeEntryService
	tasks   *TaskService

	alice *models.User // personal mode
	bob   *models.User // personal mode
}

// SetupTest runs before each test
func (suite *TimeEntryServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	users := repository.NewUserRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	tenants := NewTenantService(users)

	suite.service = NewTimeEntryService(tenants, repository.NewTimeEntryRepository(suite.db), taskRepo)
	suite.tasks = NewTaskService(tenants, taskRepo, repository.NewProjectRepository(suite.db), repository.NewSprintRepository(suite.db), users)

	suite.alice = &models.User{Email: "alice@example.com", Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(suite.alice).Error)
	suite.bob = &models.User{Email: "bob@example.com", Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(suite.bob).Error)
}

// TearDownTest runs after each test
func (suite *TimeEntryServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// TestCreateValidation covers minutes and date validation.
func (suite *TimeEntryServiceTestSuite) TestCreateValidation() {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: date, Minutes: 0})
	assert.ErrorIs(suite.T(), err, ErrMinutesNotPositive)

	_, err = suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: date, Minutes: -30})
	assert.ErrorIs(suite.T(), err, ErrMinutesNotPositive)

	_, err = suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Minutes: 30})
	assert.ErrorIs(suite.T(), err, ErrDateRequired)

	entry, err := suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: date, Minutes: 90, Note: "review"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 90, entry.Minutes)
}

// TestTaskRefMustBeVisible verifies time cannot be logged against another
// tenant's task.
func (suite *TimeEntryServiceTestSuite) TestTaskRefMustBeVisible() {
	task, err := suite.tasks.Create(suite.bob.ID, CreateTaskInput{Title: "Bob's task"})
	suite.Require().NoError(err)

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err = suite.service.Create(suite.alice.ID, CreateTimeEntryInput{
		TaskID:  &task.ID,
		Date:    date,
		Minutes: 30,
	})
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
}

// TestListOrderedNewestFirst verifies entries list by date descending.
func (suite *TimeEntryServiceTestSuite) TestListOrderedNewestFirst() {
	day1 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: day1, Minutes: 30, Note: "older"})
	suite.Require().NoError(err)
	_, err = suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: day2, Minutes: 45, Note: "newer"})
	suite.Require().NoError(err)

	entries, err := suite.service.List(suite.alice.ID, repository.TimeEntryFilter{})
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	assert.Equal(suite.T(), "newer", entries[0].Note)
	assert.Equal(suite.T(), "older", entries[1].Note)
}

// TestDateRangeFilter verifies the from/to window.
func (suite *TimeEntryServiceTestSuite) TestDateRangeFilter() {
	for day := 1; day <= 3; day++ {
		date := time.Date(2026, 8, day, 0, 0, 0, 0, time.UTC)
		_, err := suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: date, Minutes: 15})
		suite.Require().NoError(err)
	}

	from := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 2, 23, 59, 59, 0, time.UTC)

	entries, err := suite.service.List(suite.alice.ID, repository.TimeEntryFilter{From: &from, To: &to})
	suite.Require().NoError(err)
	assert.Len(suite.T(), entries, 1)
}

// TestEntriesAreScoped verifies cross-user reads and hard deletes.
func (suite *TimeEntryServiceTestSuite) TestEntriesAreScoped() {
	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	entry, err := suite.service.Create(suite.alice.ID, CreateTimeEntryInput{Date: date, Minutes: 60})
	suite.Require().NoError(err)

	entries, err := suite.service.List(suite.bob.ID, repository.TimeEntryFilter{})
	suite.Require().NoError(err)
	assert.Empty(suite.T(), entries)

	err = suite.service.Delete(suite.bob.ID, entry.ID)
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)

	suite.Require().NoError(suite.service.Delete(suite.alice.ID, entry.ID))

	// Hard delete: the row is gone, not soft-deleted.
	var count int64
	suite.db.Unscoped().Model(&models.TimeEntry{}).Where("id = ?", entry.ID).Count(&count)
	assert.Zero(suite.T(), count)
}

func TestTimeEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimeEntryServiceTestSuite))
}
