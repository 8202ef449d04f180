package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/models"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// accountRepository implements AccountRepository over the three account tables
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account into the table for its kind
func (r *accountRepository) Create(ctx context.Context, acc *domain.Account) error {
	m, err := models.AccountModelFromDomain(acc)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateAccount
		}
		return domain.StorageError("create account", err)
	}
	acc.CreatedAt = m.Creds().CreatedAt
	acc.UpdatedAt = m.Creds().UpdatedAt
	return nil
}

// FindByID gets an account by id
func (r *accountRepository) FindByID(ctx context.Context, kinds domain.KindSet, id string) (*domain.Account, error) {
	return r.findFirst(ctx, kinds, "id = ?", id)
}

// FindByEmail gets an account by email
func (r *accountRepository) FindByEmail(ctx context.Context, kinds domain.KindSet, email string) (*domain.Account, error) {
	return r.findFirst(ctx, kinds, "email = ?", email)
}

// FindByPhone gets an account by phone
func (r *accountRepository) FindByPhone(ctx context.Context, kinds domain.KindSet, phone string) (*domain.Account, error) {
	return r.findFirst(ctx, kinds, "phone = ?", phone)
}

func (r *accountRepository) findFirst(ctx context.Context, kinds domain.KindSet, query string, args ...interface{}) (*domain.Account, error) {
	for _, kind := range kinds {
		m, err := models.NewAccountModel(kind)
		if err != nil {
			return nil, err
		}

		err = r.db.WithContext(ctx).Where(query, args...).First(m).Error
		if err == nil {
			return m.ToDomain(), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.StorageError("find account", err)
		}
	}
	return nil, domain.ErrAccountNotFound
}

// Mutate runs a locked read-modify-write on one account row
func (r *accountRepository) Mutate(ctx context.Context, kind domain.Kind, id string, fn func(acc *domain.Account) bool) (*domain.Account, error) {
	var result *domain.Account

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := models.NewAccountModel(kind)
		if err != nil {
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(m).Error; err != nil {
			return err
		}

		acc := m.ToDomain()
		if !fn(acc) {
			result = acc
			return nil
		}

		updated, err := models.AccountModelFromDomain(acc)
		if err != nil {
			return err
		}
		if err := tx.Save(updated).Error; err != nil {
			return err
		}
		acc.UpdatedAt = updated.Creds().UpdatedAt
		result = acc
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, domain.ErrAccountNotFound
		case errors.Is(err, gorm.ErrDuplicatedKey):
			return nil, domain.ErrDuplicateAccount
		default:
			return nil, domain.StorageError("update account", err)
		}
	}
	return result, nil
}

// Delete removes an account row so its email and phone can be registered again
func (r *accountRepository) Delete(ctx context.Context, kind domain.Kind, id string) error {
	m, err := models.NewAccountModel(kind)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(m)
	if res.Error != nil {
		return domain.StorageError("delete account", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// List lists accounts of one kind with pagination
func (r *accountRepository) List(ctx context.Context, kind domain.Kind, filter AccountFilter, offset, limit int) ([]*domain.Account, int64, error) {
	m, err := models.NewAccountModel(kind)
	if err != nil {
		return nil, 0, err
	}
	scope := accountFilterScope(kind, filter)

	var total int64
	if err := r.db.WithContext(ctx).Model(m).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, domain.StorageError("count accounts", err)
	}

	page := r.db.WithContext(ctx).Scopes(scope).Order("created_at DESC").Offset(offset).Limit(limit)

	var accounts []*domain.Account
	switch kind {
	case domain.KindPatient:
		accounts, err = findAs[models.Patient](page)
	case domain.KindWorker:
		accounts, err = findAs[models.Worker](page)
	default:
		accounts, err = findAs[models.Admin](page)
	}
	if err != nil {
		return nil, 0, domain.StorageError("list accounts", err)
	}

	return accounts, total, nil
}

// likeEscaper makes search text match literally under MySQL's default LIKE escape
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func accountFilterScope(kind domain.Kind, filter AccountFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Query == "" && !filter.ApprovedOnly {
			return db
		}
		like := "%" + likeEscaper.Replace(filter.Query) + "%"
		if kind != domain.KindWorker {
			return db.Where("name LIKE ?", like)
		}
		if filter.ApprovedOnly {
			db = db.Where("is_approved = ?", domain.ApprovalApproved)
		}
		if filter.Query != "" {
			db = db.Where("name LIKE ? OR specialization LIKE ?", like, like)
		}
		return db
	}
}

// ClearExpiredOTPs drops reset codes that expired before the cutoff
func (r *accountRepository) ClearExpiredOTPs(ctx context.Context, before time.Time) (int64, error) {
	var cleared int64
	for _, kind := range domain.AllKinds {
		m, _ := models.NewAccountModel(kind)
		res := r.db.WithContext(ctx).
			Model(m).
			Where("reset_password_expires IS NOT NULL AND reset_password_expires < ?", before).
			Updates(map[string]interface{}{
				"reset_password_otp":     nil,
				"reset_password_expires": nil,
			})
		if res.Error != nil {
			return cleared, domain.StorageError("clear expired otp", res.Error)
		}
		cleared += res.RowsAffected
	}
	return cleared, nil
}

func findAs[T any, PT interface {
	*T
	models.AccountModel
}](q *gorm.DB) ([]*domain.Account, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, PT(&rows[i]).ToDomain())
	}
	return accounts, nil
}
