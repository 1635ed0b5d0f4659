package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

func TestJobService_CreateCopiesCompany(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")

	job, err := f.jobSvc.Create(ctx, poster, ports.JobInput{
		Title:        "Go Engineer",
		Description:  "Build APIs",
		Requirements: []string{"Go", "MongoDB"},
		Location:     "Remote",
	})
	require.NoError(t, err)
	assert.Equal(t, poster.ID, job.PostedBy)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, domain.JobActive, job.Status)

	_, err = f.jobSvc.Create(ctx, poster, ports.JobInput{Description: "x", Location: "y"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJobService_ListActive(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")

	in := ports.JobInput{Title: "Open", Description: "d", Location: "l"}
	_, err := f.jobSvc.Create(ctx, poster, in)
	require.NoError(t, err)
	in.Title, in.Status = "Closed", domain.JobInactive
	_, err = f.jobSvc.Create(ctx, poster, in)
	require.NoError(t, err)

	jobs, err := f.jobSvc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Open", jobs[0].Title)

	all, err := f.admin.ListJobs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestJobService_UpdateMergesAndGates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")
	stranger := f.seedUser("Uma", domain.RoleEmployee, "Globex")
	admin := f.seedUser("Ada", domain.RoleAdmin, "Board")

	job, err := f.jobSvc.Create(ctx, poster, ports.JobInput{Title: "Go Engineer", Description: "Build APIs", Location: "Remote", Salary: "100k"})
	require.NoError(t, err)

	_, err = f.jobSvc.Update(ctx, stranger, job.ID, ports.JobInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	updated, err := f.jobSvc.Update(ctx, poster, job.ID, ports.JobInput{Salary: "120k"})
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", updated.Title)
	assert.Equal(t, "120k", updated.Salary)

	updated, err = f.jobSvc.Update(ctx, admin, job.ID, ports.JobInput{Status: domain.JobInactive})
	require.NoError(t, err)
	assert.Equal(t, domain.JobInactive, updated.Status)

	_, err = f.jobSvc.Update(ctx, poster, job.ID, ports.JobInput{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.jobSvc.Update(ctx, poster, "missing", ports.JobInput{Title: "x"})
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poster := f.seedUser("Eve", domain.RoleEmployee, "Acme")
	stranger := f.seedUser("Uma", domain.RoleEmployee, "Globex")
	job := f.seedJob(poster, "Go Engineer")

	assert.ErrorIs(t, f.jobSvc.Delete(ctx, stranger, job.ID), domain.ErrUnauthorized)
	require.NoError(t, f.jobSvc.Delete(ctx, poster, job.ID))

	_, err := f.jobSvc.Get(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
