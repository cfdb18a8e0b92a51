package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hongminglow/staffly-be/internal/models"
)

type userDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Name          string        `bson:"name,omitempty"`
	Email         string        `bson:"email"`
	Photo         string        `bson:"photo,omitempty"`
	Role          string        `bson:"role,omitempty"`
	WorkStatus    string        `bson:"workStatus,omitempty"`
	IsVerified    bool          `bson:"isVerified"`
	Designation   string        `bson:"designation,omitempty"`
	BankAccountNo string        `bson:"bank_account_no,omitempty"`
	Salary        float64       `bson:"salary,omitempty"`
	PasswordHash  string        `bson:"password_hash,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
}

func newUserDoc(u models.User) userDoc {
	return userDoc{
		ID:            bson.NewObjectID(),
		Name:          u.Name,
		Email:         u.Email,
		Photo:         u.Photo,
		Role:          string(u.Role),
		WorkStatus:    string(u.WorkStatus),
		IsVerified:    u.IsVerified,
		Designation:   u.Designation,
		BankAccountNo: u.BankAccountNo,
		Salary:        u.Salary,
		PasswordHash:  u.PasswordHash,
		CreatedAt:     createdAt(u.CreatedAt),
	}
}

func (d userDoc) model() models.User {
	return models.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Photo:         d.Photo,
		Role:          models.Role(d.Role),
		WorkStatus:    models.WorkStatus(d.WorkStatus),
		IsVerified:    d.IsVerified,
		Designation:   d.Designation,
		BankAccountNo: d.BankAccountNo,
		Salary:        d.Salary,
		PasswordHash:  d.PasswordHash,
		CreatedAt:     d.CreatedAt,
	}
}

type employeeDoc struct {
	ID    string `bson:"id,omitempty"`
	Name  string `bson:"name,omitempty"`
	Email string `bson:"email"`
}

type payrollDoc struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Employee      employeeDoc   `bson:"employee"`
	Amount        float64       `bson:"amount"`
	Month         string        `bson:"month"`
	Year          int           `bson:"year"`
	PaymentStatus string        `bson:"payment_status"`
	PaymentDate   string        `bson:"payment_date,omitempty"`
	TransactionID string        `bson:"transaction_id,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
}

func newPayrollDoc(p models.Payroll) payrollDoc {
	return payrollDoc{
		ID:            bson.NewObjectID(),
		Employee:      employeeDoc{ID: p.Employee.ID, Name: p.Employee.Name, Email: p.Employee.Email},
		Amount:        p.Amount,
		Month:         p.Month,
		Year:          p.Year,
		PaymentStatus: p.PaymentStatus,
		PaymentDate:   p.PaymentDate,
		TransactionID: p.TransactionID,
		CreatedAt:     createdAt(p.CreatedAt),
	}
}

func (d payrollDoc) model() models.Payroll {
	return models.Payroll{
		ID:            d.ID.Hex(),
		Employee:      models.EmployeeRef{ID: d.Employee.ID, Name: d.Employee.Name, Email: d.Employee.Email},
		Amount:        d.Amount,
		Month:         d.Month,
		Year:          d.Year,
		PaymentStatus: d.PaymentStatus,
		PaymentDate:   d.PaymentDate,
		TransactionID: d.TransactionID,
		CreatedAt:     d.CreatedAt,
	}
}

type taskDoc struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserEmail string        `bson:"user_email"`
	Task      string        `bson:"task"`
	Hour      float64       `bson:"hour"`
	Date      string        `bson:"date"`
	CreatedAt time.Time     `bson:"created_at"`
}

func newTaskDoc(t models.Task) taskDoc {
	return taskDoc{
		ID:        bson.NewObjectID(),
		UserEmail: t.UserEmail,
		Task:      t.Task,
		Hour:      t.Hour,
		Date:      t.Date,
		CreatedAt: createdAt(t.CreatedAt),
	}
}

func (d taskDoc) model() models.Task {
	return models.Task{
		ID:        d.ID.Hex(),
		UserEmail: d.UserEmail,
		Task:      d.Task,
		Hour:      d.Hour,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}

// createdAt truncates to milliseconds, the precision BSON dates keep.
func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Millisecond)
}
