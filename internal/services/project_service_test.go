package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farhanahmed/family-hub-api/internal/models"
	"github.com/farhanahmed/family-hub-api/internal/repository"
)

func newProjectService(t *testing.T) (*ProjectService, *gorm.DB) {
	t.Helper()

	db := openTestDB(t)
	return NewProjectService(repository.NewProjectRepository(db)), db
}

func TestProjectService_CreateAndList(t *testing.T) {
	service, db := newProjectService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	project, err := service.CreateProject(alice, CreateProjectInput{
		Title:       "Herb garden",
		Description: "Basil and thyme on the balcony",
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusActive, project.Status)
	require.Equal(t, alice.ID, project.CreatedBy)

	_, err = service.CreateProject(alice, CreateProjectInput{})
	require.True(t, errors.Is(err, ErrTitleRequired))

	_, err = service.CreateProject(alice, CreateProjectInput{
		Title:  "Bad status",
		Status: models.ProjectStatus("banana"),
	})
	require.True(t, errors.Is(err, ErrInvalidProjectStatus))

	// Listing is owner-scoped.
	mine, err := service.ListMyProjects(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	theirs, err := service.ListMyProjects(bob)
	require.NoError(t, err)
	require.Empty(t, theirs)

	_, err = service.GetProject(bob, project.ID)
	require.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestProjectService_Update(t *testing.T) {
	service, db := newProjectService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)
	bob := seedUser(t, db, "bob", models.RoleUser)

	project, err := service.CreateProject(alice, CreateProjectInput{Title: "Herb garden"})
	require.NoError(t, err)

	title := "Vegetable garden"
	status := models.ProjectStatusCompleted
	updated, err := service.UpdateProject(alice, project.ID, UpdateProjectInput{
		Title:  &title,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, "Vegetable garden", updated.Title)
	require.Equal(t, models.ProjectStatusCompleted, updated.Status)

	bogus := models.ProjectStatus("banana")
	_, err = service.UpdateProject(alice, project.ID, UpdateProjectInput{Status: &bogus})
	require.True(t, errors.Is(err, ErrInvalidProjectStatus))

	empty := ""
	_, err = service.UpdateProject(alice, project.ID, UpdateProjectInput{Title: &empty})
	require.True(t, errors.Is(err, ErrTitleRequired))

	_, err = service.UpdateProject(bob, project.ID, UpdateProjectInput{Title: &title})
	require.True(t, errors.Is(err, ErrProjectNotFound))
}

func TestProjectService_Submit(t *testing.T) {
	service, db := newProjectService(t)
	alice := seedUser(t, db, "alice", models.RoleUser)

	project, err := service.CreateProject(alice, CreateProjectInput{Title: "Photo album"})
	require.NoError(t, err)

	_, err = service.SubmitProject(alice, project.ID, "")
	require.True(t, errors.Is(err, ErrSubmissionLinkRequired))

	submitted, err := service.SubmitProject(alice, project.ID, "https://example.com/album")
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusCompleted, submitted.Status)
	require.Equal(t, "https://example.com/album", submitted.SubmissionLink)
}

func TestProjectService_SoftDeleteAndRestore(t *testing.T) {
	service, db := newProjectService(t)
	admin := seedUser(t, db, "root", models.RoleAdmin)
	alice := seedUser(t, db, "alice", models.RoleUser)

	project, err := service.CreateProject(alice, CreateProjectInput{Title: "Herb garden"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteProject(alice, project.ID))

	// The row survives the delete but drops out of every live lookup.
	_, err = service.GetProject(alice, project.ID)
	require.True(t, errors.Is(err, ErrProjectNotFound))

	mine, err := service.ListMyProjects(alice)
	require.NoError(t, err)
	require.Empty(t, mine)

	var total int64
	require.NoError(t, db.Unscoped().Model(&models.Project{}).Count(&total).Error)
	require.EqualValues(t, 1, total)

	_, err = service.RestoreProject(alice, project.ID)
	require.True(t, errors.Is(err, ErrAdminOnly))

	restored, err := service.RestoreProject(admin, project.ID)
	require.NoError(t, err)
	require.Equal(t, project.ID, restored.ID)

	mine, err = service.ListMyProjects(alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
}
