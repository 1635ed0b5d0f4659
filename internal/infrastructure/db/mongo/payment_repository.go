package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// PaymentRepository writes the paid flag and the invoice in one transaction.
// Transactions need a replica set or sharded cluster.
type PaymentRepository struct {
	client   *mongo.Client
	apps     *mongo.Collection
	invoices *mongo.Collection
	attempts *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{
		client:   db.Client(),
		apps:     db.Collection(collectionApplications),
		invoices: db.Collection(collectionInvoices),
		attempts: db.Collection(collectionPaymentAttempts),
	}
}

type mongoInvoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID primitive.ObjectID `bson:"application_id"`
	Amount        int64              `bson:"amount"`
	PaymentMethod string             `bson:"payment_method"`
	TransactionID string             `bson:"transaction_id"`
	Status        string             `bson:"status"`
	PaidAt        time.Time          `bson:"paid_at"`
	CreatedAt     time.Time          `bson:"created_at"`
}

type mongoPaymentAttempt struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ApplicationID primitive.ObjectID `bson:"application_id"`
	ApplicantID   primitive.ObjectID `bson:"applicant_id"`
	PaymentMethod string             `bson:"payment_method"`
	TransactionID string             `bson:"transaction_id,omitempty"`
	Success       bool               `bson:"success"`
	Reason        string             `bson:"reason,omitempty"`
	AttemptedAt   time.Time          `bson:"attempted_at"`
}

func (mi *mongoInvoice) toDomain() *domain.Invoice {
	return &domain.Invoice{
		ID:            mi.ID.Hex(),
		ApplicationID: mi.ApplicationID.Hex(),
		Amount:        mi.Amount,
		PaymentMethod: mi.PaymentMethod,
		TransactionID: mi.TransactionID,
		Status:        domain.PaymentStatus(mi.Status),
		PaidAt:        mi.PaidAt.UTC(),
		CreatedAt:     mi.CreatedAt.UTC(),
	}
}

// CompletePayment flips the application to paid only if it is not paid yet
// and inserts the invoice in the same transaction. Losing a race yields
// domain.ErrAlreadyPaid and the transaction is aborted.
func (r *PaymentRepository) CompletePayment(ctx context.Context, invoice *domain.Invoice) (*domain.Invoice, error) {
	appID, ok := objectID(invoice.ApplicationID)
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	doc := mongoInvoice{
		ApplicationID: appID,
		Amount:        invoice.Amount,
		PaymentMethod: invoice.PaymentMethod,
		TransactionID: invoice.TransactionID,
		Status:        string(invoice.Status),
		PaidAt:        invoice.PaidAt,
		CreatedAt:     invoice.CreatedAt,
	}

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.apps.UpdateOne(sc,
			bson.M{"_id": appID, "payment_status": bson.M{"$ne": string(domain.PaymentPaid)}},
			bson.M{"$set": bson.M{"payment_status": string(domain.PaymentPaid), "updated_at": invoice.PaidAt}},
		)
		if err != nil {
			return nil, fmt.Errorf("mark application paid: %w", err)
		}
		if res.MatchedCount == 0 {
			n, err := r.apps.CountDocuments(sc, bson.M{"_id": appID})
			if err != nil {
				return nil, fmt.Errorf("count application: %w", err)
			}
			if n == 0 {
				return nil, domain.ErrApplicationNotFound
			}
			return nil, domain.ErrAlreadyPaid
		}

		ins, err := r.invoices.InsertOne(sc, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrAlreadyPaid
			}
			return nil, fmt.Errorf("insert invoice: %w", err)
		}
		return ins.InsertedID, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyPaid) || errors.Is(err, domain.ErrApplicationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("complete payment: %w", err)
	}

	doc.ID = result.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindInvoiceByID(ctx context.Context, id string) (*domain.Invoice, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mi mongoInvoice
	if err := r.invoices.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return mi.toDomain(), nil
}

func (r *PaymentRepository) InsertAttempt(ctx context.Context, attempt *domain.PaymentAttempt) error {
	appID, _ := objectID(attempt.ApplicationID)
	applicantID, _ := objectID(attempt.ApplicantID)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.attempts.InsertOne(ctx, mongoPaymentAttempt{
		ApplicationID: appID,
		ApplicantID:   applicantID,
		PaymentMethod: attempt.PaymentMethod,
		TransactionID: attempt.TransactionID,
		Success:       attempt.Success,
		Reason:        attempt.Reason,
		AttemptedAt:   attempt.AttemptedAt,
	})
	if err != nil {
		return fmt.Errorf("insert payment attempt: %w", err)
	}
	return nil
}
