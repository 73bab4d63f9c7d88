package account

import (
	"context"

	"github.com/google/uuid"
	types "github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type AccountRepo interface {
	Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.Account, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Account, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, role types.Role) ([]*types.Account, error)
	UpdateProfileImageURL(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, url string) error
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: baseLog.With("repo", "AccountRepo")}
}

func (ar *accountRepo) Create(ctx context.Context, tx *gorm.DB, accounts []*types.Account) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	if len(accounts) == 0 {
		return []*types.Account{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (ar *accountRepo) GetByIDs(ctx context.Context, tx *gorm.DB, accountIDs []uuid.UUID) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Account
	if len(accountIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", accountIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Account
	if len(emails) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ar *accountRepo) ListByTenant(ctx context.Context, tx *gorm.DB, tenantID uuid.UUID, role types.Role) ([]*types.Account, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	var results []*types.Account
	query := transaction.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *accountRepo) UpdateProfileImageURL(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, url string) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Account{}).
		Where("id = ?", accountID).
		Update("profile_image_url", url).Error
}
