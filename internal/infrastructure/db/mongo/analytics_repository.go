package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

type AnalyticsRepository struct {
	apps *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{apps: db.Collection(collectionApplications)}
}

type applicantCountRow struct {
	JobID           primitive.ObjectID `bson:"jobId"`
	Title           string             `bson:"title"`
	ApplicantsCount int64              `bson:"applicantsCount"`
}

// ApplicantsPerJob groups applications by job and joins the job title. Jobs
// without applications never enter the group stage and orphaned groups are
// dropped by the unwind.
func (r *AnalyticsRepository) ApplicantsPerJob(ctx context.Context) ([]domain.JobApplicantCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$job_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionJobs},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "job"},
		}}},
		{{Key: "$unwind", Value: "$job"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "jobId", Value: "$_id"},
			{Key: "title", Value: "$job.title"},
			{Key: "applicantsCount", Value: "$count"},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "applicantsCount", Value: -1},
			{Key: "title", Value: 1},
		}}},
	}

	cur, err := r.apps.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate applicants per job: %w", err)
	}

	var rows []applicantCountRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode applicants per job: %w", err)
	}

	out := make([]domain.JobApplicantCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.JobApplicantCount{
			JobID:           row.JobID.Hex(),
			Title:           row.Title,
			ApplicantsCount: row.ApplicantsCount,
		})
	}
	return out, nil
}
