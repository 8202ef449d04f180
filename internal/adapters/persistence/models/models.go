package models

import (
	"fmt"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Account Tables (patients / workers / admins)
// ============================================================

// Credentials is the credential shape shared by every account table
type Credentials struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	Name                 string     `gorm:"size:100;not null" json:"name"`
	Email                string     `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password             string     `gorm:"size:255;not null" json:"-"`
	Role                 string     `gorm:"size:20;not null" json:"role"`
	Photo                string     `gorm:"size:255" json:"photo"`
	Gender               string     `gorm:"size:10" json:"gender"`
	LoginAttempts        int        `gorm:"not null;default:0" json:"-"`
	LockUntil            *time.Time `json:"-"`
	PasswordHistory      []string   `gorm:"serializer:json;type:text" json:"-"`
	PasswordLastChanged  *time.Time `json:"-"`
	ResetPasswordOTP     *string    `gorm:"column:reset_password_otp;size:10" json:"-"`
	ResetPasswordExpires *time.Time `gorm:"index" json:"-"`
	CreatedAt            time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// AccountModel is implemented by every account table model
type AccountModel interface {
	Creds() *Credentials
	ToDomain() *domain.Account
	TableName() string
}

// Patient represents patients table
type Patient struct {
	Credentials
	Phone     string `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	BloodType string `gorm:"size:5" json:"blood_type"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) Creds() *Credentials {
	return &p.Credentials
}

func (p *Patient) ToDomain() *domain.Account {
	acc := p.Credentials.toDomain(domain.KindPatient, p.Phone)
	acc.Patient = &domain.PatientDetails{BloodType: p.BloodType}
	return acc
}

// Worker represents workers (providers) table
type Worker struct {
	Credentials
	Phone          string  `gorm:"size:20" json:"phone"`
	Specialization string  `gorm:"size:100;index" json:"specialization"`
	Bio            string  `gorm:"type:text" json:"bio"`
	TicketPrice    float64 `gorm:"type:decimal(10,2);default:0" json:"ticket_price"`
	IsApproved     string  `gorm:"size:20;not null;default:'pending'" json:"is_approved"`
}

func (Worker) TableName() string {
	return "workers"
}

func (w *Worker) Creds() *Credentials {
	return &w.Credentials
}

func (w *Worker) ToDomain() *domain.Account {
	acc := w.Credentials.toDomain(domain.KindWorker, w.Phone)
	acc.Worker = &domain.WorkerDetails{
		Specialization: w.Specialization,
		Bio:            w.Bio,
		TicketPrice:    w.TicketPrice,
		ApprovalStatus: w.IsApproved,
	}
	return acc
}

// Admin represents admins table
type Admin struct {
	Credentials
	Phone string `gorm:"size:20" json:"phone"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) Creds() *Credentials {
	return &a.Credentials
}

func (a *Admin) ToDomain() *domain.Account {
	return a.Credentials.toDomain(domain.KindAdmin, a.Phone)
}

// NewAccountModel returns an empty model for the table that holds kind
func NewAccountModel(kind domain.Kind) (AccountModel, error) {
	switch kind {
	case domain.KindPatient:
		return &Patient{}, nil
	case domain.KindWorker:
		return &Worker{}, nil
	case domain.KindAdmin:
		return &Admin{}, nil
	}
	return nil, fmt.Errorf("unknown account kind %q", kind)
}

// AccountModelFromDomain maps an account onto its table model
func AccountModelFromDomain(acc *domain.Account) (AccountModel, error) {
	creds := credentialsFromDomain(acc)
	switch acc.Kind {
	case domain.KindPatient:
		p := &Patient{Credentials: creds, Phone: acc.Phone}
		if acc.Patient != nil {
			p.BloodType = acc.Patient.BloodType
		}
		return p, nil
	case domain.KindWorker:
		w := &Worker{Credentials: creds, Phone: acc.Phone, IsApproved: domain.ApprovalPending}
		if acc.Worker != nil {
			w.Specialization = acc.Worker.Specialization
			w.Bio = acc.Worker.Bio
			w.TicketPrice = acc.Worker.TicketPrice
			if acc.Worker.ApprovalStatus != "" {
				w.IsApproved = acc.Worker.ApprovalStatus
			}
		}
		return w, nil
	case domain.KindAdmin:
		return &Admin{Credentials: creds, Phone: acc.Phone}, nil
	}
	return nil, fmt.Errorf("unknown account kind %q", acc.Kind)
}

func (c *Credentials) toDomain(kind domain.Kind, phone string) *domain.Account {
	history := make([]string, len(c.PasswordHistory))
	copy(history, c.PasswordHistory)

	return &domain.Account{
		ID:                   c.ID,
		Kind:                 kind,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                phone,
		Photo:                c.Photo,
		Gender:               c.Gender,
		PasswordHash:         c.Password,
		Role:                 domain.Role(c.Role),
		LoginAttempts:        c.LoginAttempts,
		LockUntil:            c.LockUntil,
		PasswordHistory:      history,
		PasswordLastChanged:  c.PasswordLastChanged,
		ResetPasswordOTP:     c.ResetPasswordOTP,
		ResetPasswordExpires: c.ResetPasswordExpires,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func credentialsFromDomain(acc *domain.Account) Credentials {
	return Credentials{
		ID:                   acc.ID,
		Name:                 acc.Name,
		Email:                acc.Email,
		Password:             acc.PasswordHash,
		Role:                 string(acc.Role),
		Photo:                acc.Photo,
		Gender:               acc.Gender,
		LoginAttempts:        acc.LoginAttempts,
		LockUntil:            acc.LockUntil,
		PasswordHistory:      acc.PasswordHistory,
		PasswordLastChanged:  acc.PasswordLastChanged,
		ResetPasswordOTP:     acc.ResetPasswordOTP,
		ResetPasswordExpires: acc.ResetPasswordExpires,
		CreatedAt:            acc.CreatedAt,
		UpdatedAt:            acc.UpdatedAt,
	}
}

// ============================================================
// Booking & Review Tables
// ============================================================

// Booking represents bookings table
type Booking struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	WorkerID        string    `gorm:"size:36;not null;index" json:"worker_id"`
	PatientID       string    `gorm:"size:36;not null;index" json:"patient_id"`
	TicketPrice     float64   `gorm:"type:decimal(10,2);not null" json:"ticket_price"`
	PaymentSession  string    `gorm:"size:255" json:"session"`
	AppointmentDate time.Time `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:10;not null" json:"appointment_time"`
	Status          string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	IsPaid          bool      `gorm:"default:true" json:"is_paid"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) ToDomain() *domain.Booking {
	return &domain.Booking{
		ID:              b.ID,
		WorkerID:        b.WorkerID,
		PatientID:       b.PatientID,
		TicketPrice:     b.TicketPrice,
		PaymentSession:  b.PaymentSession,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Status:          b.Status,
		IsPaid:          b.IsPaid,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// BookingFromDomain maps a booking onto its table model
func BookingFromDomain(b *domain.Booking) *Booking {
	return &Booking{
		ID:              b.ID,
		WorkerID:        b.WorkerID,
		PatientID:       b.PatientID,
		TicketPrice:     b.TicketPrice,
		PaymentSession:  b.PaymentSession,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Status:          b.Status,
		IsPaid:          b.IsPaid,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// Review represents reviews table
type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	WorkerID   string    `gorm:"size:36;not null;index" json:"worker_id"`
	PatientID  string    `gorm:"size:36;not null;index" json:"patient_id"`
	ReviewText string    `gorm:"type:text;not null" json:"review_text"`
	Rating     int       `gorm:"not null;default:0" json:"rating"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) ToDomain() *domain.Review {
	return &domain.Review{
		ID:        r.ID,
		WorkerID:  r.WorkerID,
		PatientID: r.PatientID,
		Text:      r.ReviewText,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Patient{},
		&Worker{},
		&Admin{},
		&Booking{},
		&Review{},
	)
}
