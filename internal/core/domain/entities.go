package domain

import "time"

// Role represents the authorization role stored on an account
type Role string

const (
	RolePatient Role = "patient"
	RoleWorker  Role = "worker"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// Kind identifies which account table holds a record
type Kind string

const (
	KindPatient Kind = "patient"
	KindWorker  Kind = "worker"
	KindAdmin   Kind = "admin"
)

// KindSet is an ordered set of account kinds used for lookups
type KindSet []Kind

// AllKinds is the lookup order used by login, get-token and role checks
var AllKinds = KindSet{KindPatient, KindWorker, KindAdmin}

// KindForRole maps a signup role onto the table that stores it
func KindForRole(role Role) (Kind, bool) {
	switch role {
	case RolePatient:
		return KindPatient, true
	case RoleWorker:
		return KindWorker, true
	case RoleAdmin:
		return KindAdmin, true
	}
	return "", false
}

// PasswordHistoryLimit bounds Account.PasswordHistory
const PasswordHistoryLimit = 5

// Approval states for workers
const (
	ApprovalPending   = "pending"
	ApprovalApproved  = "approved"
	ApprovalCancelled = "cancelled"
)

// Account is the credential-bearing record shared by patients, workers and admins.
// Kind is the discriminant; Patient and Worker carry kind-specific details.
type Account struct {
	ID    string
	Kind  Kind
	Name  string
	Email string
	Phone string
	Photo string

	Gender string

	PasswordHash        string
	Role                Role
	LoginAttempts       int
	LockUntil           *time.Time
	PasswordHistory     []string
	PasswordLastChanged *time.Time

	ResetPasswordOTP     *string
	ResetPasswordExpires *time.Time

	Patient *PatientDetails
	Worker  *WorkerDetails

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientDetails holds patient-only fields
type PatientDetails struct {
	BloodType string
}

// WorkerDetails holds provider-only fields
type WorkerDetails struct {
	Specialization string
	Bio            string
	TicketPrice    float64
	ApprovalStatus string
}

// IsLocked is the derived lock state: a lock timestamp still in the future
func (a *Account) IsLocked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}

// HasExpiredLock reports a lock timestamp that is set but no longer in force
func (a *Account) HasExpiredLock(now time.Time) bool {
	return a.LockUntil != nil && !a.LockUntil.After(now)
}

// SetPassword stores a new hash and records it in the bounded history
func (a *Account) SetPassword(hash string, now time.Time) {
	a.PasswordHash = hash
	if len(a.PasswordHistory) >= PasswordHistoryLimit {
		a.PasswordHistory = a.PasswordHistory[len(a.PasswordHistory)-PasswordHistoryLimit+1:]
	}
	a.PasswordHistory = append(a.PasswordHistory, hash)
	changed := now
	a.PasswordLastChanged = &changed
}

// ClearResetOTP drops any pending password-reset code
func (a *Account) ClearResetOTP() {
	a.ResetPasswordOTP = nil
	a.ResetPasswordExpires = nil
}

// Public strips credentials and security counters
func (a *Account) Public() *PublicProfile {
	p := &PublicProfile{
		ID:        a.ID,
		Kind:      a.Kind,
		Name:      a.Name,
		Email:     a.Email,
		Phone:     a.Phone,
		Photo:     a.Photo,
		Gender:    a.Gender,
		CreatedAt: a.CreatedAt,
	}
	if a.Patient != nil {
		p.BloodType = a.Patient.BloodType
	}
	if a.Worker != nil {
		p.Specialization = a.Worker.Specialization
		p.Bio = a.Worker.Bio
		p.TicketPrice = a.Worker.TicketPrice
		p.ApprovalStatus = a.Worker.ApprovalStatus
	}
	return p
}

// PublicProfile is the outward view of an account
type PublicProfile struct {
	ID             string    `json:"id"`
	Kind           Kind      `json:"kind"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Photo          string    `json:"photo,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	BloodType      string    `json:"bloodType,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	TicketPrice    float64   `json:"ticketPrice,omitempty"`
	ApprovalStatus string    `json:"isApproved,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Booking status values
const (
	BookingPending   = "pending"
	BookingApproved  = "approved"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Booking is an appointment between a patient and a worker
type Booking struct {
	ID              string    `json:"id"`
	WorkerID        string    `json:"workerId"`
	PatientID       string    `json:"userId"`
	TicketPrice     float64   `json:"ticketPrice"`
	PaymentSession  string    `json:"session"`
	AppointmentDate time.Time `json:"appointmentDate"`
	AppointmentTime string    `json:"appointmentTime"`
	Status          string    `json:"status"`
	IsPaid          bool      `json:"isPaid"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Review is a patient's rating of a worker
type Review struct {
	ID        string    `json:"id"`
	WorkerID  string    `json:"workerId"`
	PatientID string    `json:"userId"`
	Text      string    `json:"reviewText"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentSession is what the payment provider returns for a checkout
type PaymentSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
