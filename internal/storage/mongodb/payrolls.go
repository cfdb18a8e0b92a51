package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/hongminglow/staffly-be/internal/models"
	"github.com/hongminglow/staffly-be/internal/storage"
)

type payrollStore struct{ coll *mongo.Collection }

// CreatePayroll relies on payrolls_period_key_unique to reject a second
// record for the same employee, month, and year.
func (s *payrollStore) CreatePayroll(ctx context.Context, p models.Payroll) (models.Payroll, error) {
	doc := newPayrollDoc(p)
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Payroll{}, insertErr(err)
	}
	return doc.model(), nil
}

func (s *payrollStore) PayrollExists(ctx context.Context, key models.PeriodKey) (bool, error) {
	filter := bson.D{
		{Key: "employee.email", Value: key.EmployeeEmail},
		{Key: "month", Value: key.Month},
		{Key: "year", Value: key.Year},
	}
	n, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *payrollStore) ListPayrolls(ctx context.Context, filter storage.PayrollFilter) ([]models.Payroll, error) {
	q := bson.D{}
	if filter.EmployeeEmail != "" {
		q = append(q, bson.E{Key: "employee.email", Value: filter.EmployeeEmail})
	}
	if filter.PaymentStatus != "" {
		q = append(q, bson.E{Key: "payment_status", Value: filter.PaymentStatus})
	}
	cur, err := s.coll.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	docs, err := decodeAll[payrollDoc](ctx, cur)
	if err != nil {
		return nil, err
	}
	out := make([]models.Payroll, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *payrollStore) UpdatePayment(ctx context.Context, id string, update storage.PaymentUpdate) (models.UpdateResult, error) {
	return setFields(ctx, s.coll, id, bson.D{
		{Key: "payment_date", Value: update.PaymentDate},
		{Key: "payment_status", Value: update.PaymentStatus},
		{Key: "transaction_id", Value: update.TransactionID},
	})
}
