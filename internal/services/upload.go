package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"gorm.io/gorm"
)

type UploadInput struct {
	Type          domain.MediaType
	Filename      string
	AppointmentID *uuid.UUID
	File          io.Reader
}

type UploadService interface {
	Upload(ctx context.Context, input UploadInput) (*StoredObject, error)
	List(ctx context.Context) ([]*domain.MediaUpload, error)
}

type uploadService struct {
	db            *gorm.DB
	log           *logger.Logger
	bucketService BucketService
	mediaRepo     repos.MediaUploadRepo
	accountRepo   repos.AccountRepo
}

func NewUploadService(
	db *gorm.DB,
	log *logger.Logger,
	bucketService BucketService,
	mediaRepo repos.MediaUploadRepo,
	accountRepo repos.AccountRepo,
) UploadService {
	serviceLog := log.With("service", "UploadService")
	return &uploadService{
		db:            db,
		log:           serviceLog,
		bucketService: bucketService,
		mediaRepo:     mediaRepo,
		accountRepo:   accountRepo,
	}
}

// Upload stores the object, records the handle and, for profile images,
// updates the account. The object write happens first; a failed database
// write leaves an orphan in the bucket rather than a dangling URL.
func (us *uploadService) Upload(ctx context.Context, input UploadInput) (*StoredObject, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role == domain.RoleProfessional && rd.ApprovalState != domain.ApprovalActive {
		if rd.ApprovalState == domain.ApprovalRejected {
			return nil, apierr.Forbidden("registration was rejected")
		}
		return nil, apierr.PendingApproval()
	}
	switch input.Type {
	case domain.MediaProfile, domain.MediaReceipt:
	default:
		return nil, apierr.Validation("type", "must be profile or receipt")
	}
	if input.File == nil {
		return nil, apierr.Validation("file", "required")
	}

	if us.bucketService == nil {
		return nil, apierr.Unavailable("media storage")
	}

	ext := strings.ToLower(path.Ext(input.Filename))
	key := fmt.Sprintf("%s/%s/%s%s", rd.TenantID, input.Type, uuid.New(), ext)

	stored, upErr := us.bucketService.UploadObject(ctx, key, input.File)
	if upErr != nil {
		us.log.Warn("Object store write failed", "error", upErr)
		return nil, apierr.Unavailable("media storage")
	}

	record := &domain.MediaUpload{
		ID:             uuid.New(),
		Type:           input.Type,
		TenantID:       rd.TenantID,
		ProfessionalID: rd.AccountID,
		AppointmentID:  input.AppointmentID,
		SecureURL:      stored.SecureURL,
		PublicID:       stored.PublicID,
		AssetID:        stored.AssetID,
	}
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := us.mediaRepo.Create(ctx, tx, []*domain.MediaUpload{record}); cErr != nil {
			return fmt.Errorf("failed to record upload: %w", cErr)
		}
		if input.Type == domain.MediaProfile {
			if uErr := us.accountRepo.UpdateProfileImageURL(ctx, tx, rd.AccountID, stored.SecureURL); uErr != nil {
				return fmt.Errorf("failed to update profile image: %w", uErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

func (us *uploadService) List(ctx context.Context) ([]*domain.MediaUpload, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers list uploads")
	}
	return us.mediaRepo.ListByTenant(ctx, nil, rd.TenantID)
}
