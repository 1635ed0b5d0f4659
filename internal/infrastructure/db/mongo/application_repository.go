package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(collectionApplications)}
}

type mongoApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	JobID         primitive.ObjectID `bson:"job_id"`
	ApplicantID   primitive.ObjectID `bson:"applicant_id"`
	CVPath        string             `bson:"cv_path"`
	Status        string             `bson:"status"`
	PaymentStatus string             `bson:"payment_status"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

// applicationView is an application joined with its applicant and job.
type applicationView struct {
	mongoApplication `bson:",inline"`
	Applicant        []struct {
		Name  string `bson:"name"`
		Email string `bson:"email"`
	} `bson:"applicant"`
	Job []struct {
		Title string `bson:"title"`
	} `bson:"job"`
}

func (ma *mongoApplication) toDomain() *domain.Application {
	return &domain.Application{
		ID:            ma.ID.Hex(),
		JobID:         ma.JobID.Hex(),
		ApplicantID:   ma.ApplicantID.Hex(),
		CVPath:        ma.CVPath,
		Status:        domain.ApplicationStatus(ma.Status),
		PaymentStatus: domain.PaymentStatus(ma.PaymentStatus),
		CreatedAt:     ma.CreatedAt.UTC(),
		UpdatedAt:     ma.UpdatedAt.UTC(),
	}
}

func (v *applicationView) toDomain() *domain.Application {
	app := v.mongoApplication.toDomain()
	if len(v.Applicant) > 0 {
		app.ApplicantName = v.Applicant[0].Name
		app.ApplicantEmail = v.Applicant[0].Email
	}
	if len(v.Job) > 0 {
		app.JobTitle = v.Job[0].Title
	}
	return app
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) (*domain.Application, error) {
	jobID, ok := objectID(app.JobID)
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	applicantID, ok := objectID(app.ApplicantID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		JobID:         jobID,
		ApplicantID:   applicantID,
		CVPath:        app.CVPath,
		Status:        string(app.Status),
		PaymentStatus: string(app.PaymentStatus),
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}
	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	job, ok := objectID(jobID)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	applicant, ok := objectID(applicantID)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	return r.findOne(ctx, bson.M{"job_id": job, "applicant_id": applicant})
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	oid, ok := objectID(jobID)
	if !ok {
		return []*domain.Application{}, nil
	}
	return r.listViews(ctx, bson.M{"job_id": oid})
}

func (r *ApplicationRepository) List(ctx context.Context) ([]*domain.Application, error) {
	return r.listViews(ctx, bson.M{})
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}}

	var ma mongoApplication
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&ma)
	if err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ApplicationRepository) findOne(ctx context.Context, filter bson.M) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoApplication
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return ma.toDomain(), nil
}

// listViews returns matching applications newest first, populated with
// applicant name and email and the job title.
func (r *ApplicationRepository) listViews(ctx context.Context, match bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "applicant_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "applicant"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionJobs},
			{Key: "localField", Value: "job_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "job"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	var views []applicationView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	apps := make([]*domain.Application, 0, len(views))
	for i := range views {
		apps = append(apps, views[i].toDomain())
	}
	return apps, nil
}
