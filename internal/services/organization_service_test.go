package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

// OrganizationServiceTestSuite defines the test suite for OrganizationService
type OrganizationServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *OrganizationService
	projects *ProjectService
}

// SetupTest runs before each test
func (suite *OrganizationServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	suite.Require().NoError(database.Migrate(suite.db))

	users := repository.NewUserRepository(suite.db)
	orgs := repository.NewOrganizationRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)

	suite.service = NewOrganizationService(orgs, users)
	suite.projects = NewProjectService(NewTenantService(users), projectRepo)
}

// TearDownTest runs after each test
func (suite *OrganizationServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *OrganizationServiceTestSuite) createUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         models.RoleMember,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *OrganizationServiceTestSuite) reload(userID uint64) *models.User {
	var user models.User
	suite.Require().NoError(suite.db.First(&user, userID).Error)
	return &user
}

// TestCreateOrganization verifies the creator becomes the owner member.
func (suite *OrganizationServiceTestSuite) TestCreateOrganization() {
	user := suite.createUser("owner@example.com")

	org, err := suite.service.CreateOrganization(user.ID, "Acme")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Acme", org.Name)
	assert.Equal(suite.T(), user.ID, org.OwnerID)

	reloaded := suite.reload(user.ID)
	suite.Require().NotNil(reloaded.OrganizationID)
	assert.Equal(suite.T(), org.ID, *reloaded.OrganizationID)
	assert.Equal(suite.T(), models.RoleOwner, reloaded.Role)
}

// TestCreateOrganization_AlreadyMember verifies a member cannot create a
// second organization.
func (suite *OrganizationServiceTestSuite) TestCreateOrganization_AlreadyMember() {
	user := suite.createUser("owner@example.com")
	_, err := suite.service.CreateOrganization(user.ID, "First")
	suite.Require().NoError(err)

	_, err = suite.service.CreateOrganization(user.ID, "Second")
	assert.ErrorIs(suite.T(), err, ErrAlreadyInOrganization)
}

// TestCreateOrganization_FreshStart verifies rows created in personal mode
// stay in the personal scope after the user joins an organization, and come
// back once the user returns to personal mode.
func (suite *OrganizationServiceTestSuite) TestCreateOrganization_FreshStart() {
	user := suite.createUser("solo@example.com")

	_, err := suite.projects.Create(user.ID, CreateProjectInput{Name: "Personal project"})
	suite.Require().NoError(err)

	org, err := suite.service.CreateOrganization(user.ID, "Acme")
	suite.Require().NoError(err)

	// The personal project is invisible from the org scope.
	projects, err := suite.projects.List(user.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), projects)

	// But the row itself is untouched.
	var count int64
	suite.db.Model(&models.Project{}).Where("organization_id IS NULL AND user_id = ?", user.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	// Leaving (sole owner, so the org is deleted) restores the personal view.
	suite.Require().NoError(suite.service.Leave(user.ID))

	projects, err = suite.projects.List(user.ID)
	suite.Require().NoError(err)
	assert.Len(suite.T(), projects, 1)

	err = suite.db.First(&models.Organization{}, org.ID).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestInviteUser verifies the owner can pull a personal-mode user in.
func (suite *OrganizationServiceTestSuite) TestInviteUser() {
	owner := suite.createUser("owner@example.com")
	invitee := suite.createUser("invitee@example.com")

	org, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)

	got, err := suite.service.InviteUser(owner.ID, "Invitee@Example.com ")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), invitee.ID, got.ID)

	reloaded := suite.reload(invitee.ID)
	suite.Require().NotNil(reloaded.OrganizationID)
	assert.Equal(suite.T(), org.ID, *reloaded.OrganizationID)
	assert.Equal(suite.T(), models.RoleMember, reloaded.Role)
}

// TestInviteUser_Errors covers the invite failure modes.
func (suite *OrganizationServiceTestSuite) TestInviteUser_Errors() {
	owner := suite.createUser("owner@example.com")
	member := suite.createUser("member@example.com")
	outsider := suite.createUser("outsider@example.com")

	_, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	suite.Require().NoError(err)

	// Unknown email.
	_, err = suite.service.InviteUser(owner.ID, "nobody@example.com")
	assert.ErrorIs(suite.T(), err, ErrInviteeNotFound)

	// Already a member somewhere.
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	assert.ErrorIs(suite.T(), err, ErrInviteeAlreadyMember)

	// Non-owners cannot invite.
	_, err = suite.service.InviteUser(member.ID, outsider.Email)
	assert.ErrorIs(suite.T(), err, ErrNotOrganizationOwner)

	// Users outside any organization cannot invite.
	_, err = suite.service.InviteUser(outsider.ID, member.Email)
	assert.ErrorIs(suite.T(), err, ErrNotInOrganization)
}

// TestLeave verifies a member returns to personal mode.
func (suite *OrganizationServiceTestSuite) TestLeave() {
	owner := suite.createUser("owner@example.com")
	member := suite.createUser("member@example.com")

	org, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Leave(member.ID))

	reloaded := suite.reload(member.ID)
	assert.Nil(suite.T(), reloaded.OrganizationID)

	// The organization survives with the owner in it.
	assert.NoError(suite.T(), suite.db.First(&models.Organization{}, org.ID).Error)
}

// TestLeave_OwnerBlockedWhileMembersRemain verifies the owner must hand the
// org off (by deleting it) before leaving.
func (suite *OrganizationServiceTestSuite) TestLeave_OwnerBlockedWhileMembersRemain() {
	owner := suite.createUser("owner@example.com")
	member := suite.createUser("member@example.com")

	_, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	suite.Require().NoError(err)

	err = suite.service.Leave(owner.ID)
	assert.ErrorIs(suite.T(), err, ErrOwnerCannotLeave)
}

// TestDeleteCurrent verifies deletion releases members and removes scoped rows.
func (suite *OrganizationServiceTestSuite) TestDeleteCurrent() {
	owner := suite.createUser("owner@example.com")
	member := suite.createUser("member@example.com")

	org, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	suite.Require().NoError(err)

	_, err = suite.projects.Create(member.ID, CreateProjectInput{Name: "Org project"})
	suite.Require().NoError(err)

	// Members cannot delete the org.
	err = suite.service.DeleteCurrent(member.ID)
	assert.ErrorIs(suite.T(), err, ErrNotOrganizationOwner)

	suite.Require().NoError(suite.service.DeleteCurrent(owner.ID))

	assert.Nil(suite.T(), suite.reload(owner.ID).OrganizationID)
	assert.Nil(suite.T(), suite.reload(member.ID).OrganizationID)

	var count int64
	suite.db.Model(&models.Project{}).Where("organization_id = ?", org.ID).Count(&count)
	assert.Zero(suite.T(), count)

	err = suite.db.First(&models.Organization{}, org.ID).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// TestUpdateCurrent verifies owner-only settings updates and work hour
// validation.
func (suite *OrganizationServiceTestSuite) TestUpdateCurrent() {
	owner := suite.createUser("owner@example.com")
	member := suite.createUser("member@example.com")

	_, err := suite.service.CreateOrganization(owner.ID, "Acme")
	suite.Require().NoError(err)
	_, err = suite.service.InviteUser(owner.ID, member.Email)
	suite.Require().NoError(err)

	start := "08:30"
	end := "16:30"
	org, err := suite.service.UpdateCurrent(owner.ID, UpdateCurrentInput{
		WorkHoursStart: &start,
		WorkHoursEnd:   &end,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "08:30", org.WorkHoursStart)
	assert.Equal(suite.T(), "16:30", org.WorkHoursEnd)

	bad := "25:00"
	_, err = suite.service.UpdateCurrent(owner.ID, UpdateCurrentInput{WorkHoursStart: &bad})
	assert.ErrorIs(suite.T(), err, ErrInvalidWorkHours)

	name := "Evil Corp"
	_, err = suite.service.UpdateCurrent(member.ID, UpdateCurrentInput{Name: &name})
	assert.ErrorIs(suite.T(), err, ErrNotOrganizationOwner)
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
