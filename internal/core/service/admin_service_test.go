package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

func TestAdminService_UpdateUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	seeker := f.seedUser("Sam", domain.RoleJobSeeker, "")
	f.seedUser("Tia", domain.RoleJobSeeker, "")

	updated, err := f.admin.UpdateUser(ctx, seeker.ID, ports.UserUpdateInput{Role: domain.RoleEmployee, Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, updated.Role)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Sam", updated.Name)

	updated, err = f.admin.UpdateUser(ctx, seeker.ID, ports.UserUpdateInput{Role: domain.RoleJobSeeker})
	require.NoError(t, err)
	assert.Empty(t, updated.Company)

	_, err = f.admin.UpdateUser(ctx, seeker.ID, ports.UserUpdateInput{Email: "TIA@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = f.admin.UpdateUser(ctx, seeker.ID, ports.UserUpdateInput{Role: "root"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.admin.UpdateUser(ctx, "missing", ports.UserUpdateInput{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAdminService_ListAndDelete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")
	seeker := f.seedUser("Sam", domain.RoleJobSeeker, "")
	job := f.seedJob(poster, "Go Engineer")
	_, err := f.appSvc.Submit(ctx, seeker, job.ID, pdfUpload())
	require.NoError(t, err)

	users, err := f.admin.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	apps, err := f.admin.ListApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, apps, 1)

	require.NoError(t, f.admin.DeleteUser(ctx, seeker.ID))
	_, err = f.admin.GetUser(ctx, seeker.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, f.admin.DeleteUser(ctx, seeker.ID), domain.ErrUserNotFound)
}

func TestAnalyticsService_ApplicantsPerJob(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")
	busy := f.seedJob(poster, "Busy")
	quiet := f.seedJob(poster, "Quiet")
	for _, name := range []string{"Sam", "Tia", "Ugo"} {
		seeker := f.seedUser(name, domain.RoleJobSeeker, "")
		_, err := f.appSvc.Submit(ctx, seeker, busy.ID, pdfUpload())
		require.NoError(t, err)
	}

	rows, err := f.analytics.ApplicantsPerJob(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, busy.ID, rows[0].JobID)
	assert.Equal(t, "Busy", rows[0].Title)
	assert.Equal(t, int64(3), rows[0].ApplicantsCount)
	for _, r := range rows {
		assert.NotEqual(t, quiet.ID, r.JobID)
	}
}

func TestAnalyticsService_Empty(t *testing.T) {
	f := newFixture()

	rows, err := f.analytics.ApplicantsPerJob(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
