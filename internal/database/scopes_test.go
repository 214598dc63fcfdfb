package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/utils"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Task{}))
	return db
}

func seedTasks(t *testing.T, db *gorm.DB) {
	t.Helper()

	orgA := uint64(1)
	orgB := uint64(2)

	rows := []models.Task{
		{Title: "org A by user 10", OrganizationID: &orgA, UserID: 10},
		{Title: "org A by user 11", OrganizationID: &orgA, UserID: 11},
		{Title: "org B by user 20", OrganizationID: &orgB, UserID: 20},
		{Title: "personal of user 10", OrganizationID: nil, UserID: 10},
		{Title: "personal of user 30", OrganizationID: nil, UserID: 30},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}
}

func TestTenantScope_OrgBranchSeesAllOrgRows(t *testing.T) {
	db := openTestDB(t)
	seedTasks(t, db)

	orgA := uint64(1)
	tenant := Tenant{UserID: 10, OrganizationID: &orgA}

	var tasks []models.Task
	err := db.Scopes(TenantScope(tenant, "user_id")).Find(&tasks).Error
	require.NoError(t, err)

	// Both org A rows are visible regardless of which member created them;
	// personal rows of the same user are not.
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		require.NotNil(t, task.OrganizationID)
		assert.Equal(t, orgA, *task.OrganizationID)
	}
}

func TestTenantScope_PersonalBranchSeesOnlyOwnNullRows(t *testing.T) {
	db := openTestDB(t)
	seedTasks(t, db)

	tenant := Tenant{UserID: 10}

	var tasks []models.Task
	err := db.Scopes(TenantScope(tenant, "user_id")).Find(&tasks).Error
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "personal of user 10", tasks[0].Title)
	assert.Nil(t, tasks[0].OrganizationID)
}

func TestTenantScope_PersonalBranchExcludesOrgRowsOfSameUser(t *testing.T) {
	db := openTestDB(t)
	seedTasks(t, db)

	// User 10 has rows in org A and in personal mode. The personal branch
	// must not surface the org rows even though user_id matches.
	tenant := Tenant{UserID: 10}

	var count int64
	err := db.Model(&models.Task{}).
		Scopes(TenantScope(tenant, "user_id")).
		Where("organization_id IS NOT NULL").
		Count(&count).Error
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestTenantScope_ScopedUpdateDoesNotCrossTenants(t *testing.T) {
	db := openTestDB(t)
	seedTasks(t, db)

	orgB := uint64(2)
	attacker := Tenant{UserID: 10, OrganizationID: nil}

	// Locate the org B row and try to mutate it from a personal scope.
	var victim models.Task
	require.NoError(t, db.Where("organization_id = ?", orgB).First(&victim).Error)

	result := db.Model(&models.Task{}).
		Scopes(TenantScope(attacker, "user_id")).
		Where("id = ?", victim.ID).
		Update("title", "hijacked")
	require.NoError(t, result.Error)
	assert.Zero(t, result.RowsAffected)

	var reloaded models.Task
	require.NoError(t, db.First(&reloaded, victim.ID).Error)
	assert.Equal(t, victim.Title, reloaded.Title)
}

func TestTenantScope_CustomOwnerColumn(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Meeting{}))

	meeting := models.Meeting{Title: "standup", OrganizerID: 7}
	require.NoError(t, db.Create(&meeting).Error)

	var meetings []models.Meeting
	err = db.Scopes(TenantScope(Tenant{UserID: 7}, "organizer_id")).Find(&meetings).Error
	require.NoError(t, err)
	require.Len(t, meetings, 1)

	err = db.Scopes(TenantScope(Tenant{UserID: 8}, "organizer_id")).Find(&meetings).Error
	require.NoError(t, err)
	assert.Empty(t, meetings)
}

func TestPaginate(t *testing.T) {
	db := openTestDB(t)

	for i := 1; i <= 5; i++ {
		task := models.Task{Title: "task", UserID: 1}
		require.NoError(t, db.Create(&task).Error)
	}

	var tasks []models.Task
	err := db.Order("id ASC").
		Scopes(Paginate(utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})).
		Find(&tasks).Error
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	assert.Equal(t, uint64(3), tasks[0].ID)
	assert.Equal(t, uint64(4), tasks[1].ID)
}

func TestTenantPersonal(t *testing.T) {
	org := uint64(1)
	assert.True(t, Tenant{UserID: 1}.Personal())
	assert.False(t, Tenant{UserID: 1, OrganizationID: &org}.Personal())
}
