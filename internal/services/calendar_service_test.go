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

// CalendarServiceTestSuite defines the test suite for CalendarService
type CalendarServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CalendarService

	org    *models.Organization
	alice  *models.User // org member
	bob    *models.User // org member
	carlos *models.User // personal mode
}

// SetupTest runs before each test
func (suite *CalendarServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	users := repository.NewUserRepository(suite.db)
	suite.service = NewCalendarService(NewTenantService(users), repository.NewCalendarRepository(suite.db))

	suite.org = &models.Organization{Name: "Acme", OwnerID: 1}
	suite.Require().NoError(suite.db.Create(suite.org).Error)

	suite.alice = &models.User{Email: "alice@example.com", Role: models.RoleMember, OrganizationID: &suite.org.ID}
	suite.Require().NoError(suite.db.Create(suite.alice).Error)
	suite.bob = &models.User{Email: "bob@example.com", Role: models.RoleMember, OrganizationID: &suite.org.ID}
	suite.Require().NoError(suite.db.Create(suite.bob).Error)
	suite.carlos = &models.User{Email: "carlos@example.com", Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(suite.carlos).Error)
}

// TearDownTest runs after each test
func (suite *CalendarServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CalendarServiceTestSuite) eventInput(title string, start time.Time) CreateEventInput {
	return CreateEventInput{
		Title:    title,
		StartsAt: start,
		EndsAt:   start.Add(time.Hour),
	}
}

// TestMeetingsOrderedByStart verifies meetings list by start time, not
// creation order.
func (suite *CalendarServiceTestSuite) TestMeetingsOrderedByStart() {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateMeeting(suite.alice.ID, suite.eventInput("Late", base.Add(4*time.Hour)))
	suite.Require().NoError(err)
	_, err = suite.service.CreateMeeting(suite.alice.ID, suite.eventInput("Early", base))
	suite.Require().NoError(err)

	meetings, err := suite.service.ListMeetings(suite.bob.ID)
	suite.Require().NoError(err)
	suite.Require().Len(meetings, 2)
	assert.Equal(suite.T(), "Early", meetings[0].Title)
	assert.Equal(suite.T(), "Late", meetings[1].Title)
}

// TestMeetingOwnerColumn verifies the organizer column is the owner column
// for meetings: a personal-mode organizer sees only their own meetings.
func (suite *CalendarServiceTestSuite) TestMeetingOwnerColumn() {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	meeting, err := suite.service.CreateMeeting(suite.carlos.ID, suite.eventInput("Solo sync", base))
	suite.Require().NoError(err)
	assert.Equal(suite.T(), suite.carlos.ID, meeting.OrganizerID)
	assert.Nil(suite.T(), meeting.OrganizationID)

	// Org members do not see the personal meeting.
	meetings, err := suite.service.ListMeetings(suite.alice.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), meetings)

	// Another tenant cannot update or delete it.
	newTitle := "Taken over"
	err = suite.service.UpdateMeeting(suite.alice.ID, meeting.ID, UpdateEventInput{Title: &newTitle})
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
	err = suite.service.DeleteMeeting(suite.alice.ID, meeting.ID)
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
}

// TestEventValidation covers title and time-window validation.
func (suite *CalendarServiceTestSuite) TestEventValidation() {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateMeeting(suite.alice.ID, CreateEventInput{
		Title:    " ",
		StartsAt: base,
		EndsAt:   base.Add(time.Hour),
	})
	assert.ErrorIs(suite.T(), err, ErrEventTitleRequired)

	_, err = suite.service.CreateMeeting(suite.alice.ID, CreateEventInput{
		Title:    "Backwards",
		StartsAt: base.Add(time.Hour),
		EndsAt:   base,
	})
	assert.ErrorIs(suite.T(), err, ErrEventTimesInverted)

	_, err = suite.service.CreateAppointment(suite.alice.ID, CreateEventInput{
		Title:    "Zero length",
		StartsAt: base,
		EndsAt:   base,
	})
	assert.ErrorIs(suite.T(), err, ErrEventTimesInverted)
}

// TestAppointmentAgendaIgnored verifies the agenda field has no effect on
// appointments, which carry no agenda column.
func (suite *CalendarServiceTestSuite) TestAppointmentAgendaIgnored() {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	appointment, err := suite.service.CreateAppointment(suite.alice.ID, suite.eventInput("Dentist", base))
	suite.Require().NoError(err)

	agenda := "teeth"
	err = suite.service.UpdateAppointment(suite.alice.ID, appointment.ID, UpdateEventInput{Agenda: &agenda})
	assert.ErrorIs(suite.T(), err, ErrNoFieldsToUpdate)
}

// TestAppointmentsScoped verifies appointment visibility per tenant.
func (suite *CalendarServiceTestSuite) TestAppointmentsScoped() {
	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	_, err := suite.service.CreateAppointment(suite.carlos.ID, suite.eventInput("Private", base))
	suite.Require().NoError(err)

	appointments, err := suite.service.ListAppointments(suite.carlos.ID)
	suite.Require().NoError(err)
	assert.Len(suite.T(), appointments, 1)

	appointments, err = suite.service.ListAppointments(suite.alice.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), appointments)
}

func TestCalendarServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CalendarServiceTestSuite))
}
