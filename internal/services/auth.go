package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterManagerInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	SalonName string `json:"salonName"`
}

type RegisterProfessionalInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	CPF        string `json:"cpf"`
	TenantCode string `json:"salonCode"`
}

type LoginInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	RememberDays int    `json:"rememberDays"`
}

// Session is what a successful login or registration hands the transport
// layer: the signed token, its lifetime and the authenticated account.
type Session struct {
	Token    string
	TTL      time.Duration
	Account  *domain.Account
	Approval domain.ApprovalState
}

type AuthService interface {
	RegisterManager(ctx context.Context, input RegisterManagerInput) (*Session, error)
	RegisterProfessional(ctx context.Context, input RegisterProfessionalInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	accountRepo  repos.AccountRepo
	profileRepo  repos.ProfileRepo
	tenantRepo   repos.TenantRepo
	tokenService TokenService
	auditService AuditService
	notifier     Notifier
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	profileRepo repos.ProfileRepo,
	tenantRepo repos.TenantRepo,
	tokenService TokenService,
	auditService AuditService,
	notifier Notifier,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		accountRepo:  accountRepo,
		profileRepo:  profileRepo,
		tenantRepo:   tenantRepo,
		tokenService: tokenService,
		auditService: auditService,
		notifier:     notifier,
	}
}

// RegisterManager creates the account, its salon and the manager profile
// in one transaction. Managers are active immediately.
func (as *authService) RegisterManager(ctx context.Context, input RegisterManagerInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if vErr := validateCredentials(email, input.Password); vErr != nil {
		return nil, vErr
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, apierr.Validation("firstName", "required")
	}
	if strings.TrimSpace(input.SalonName) == "" {
		return nil, apierr.Validation("salonName", "required")
	}

	taken, tErr := as.accountRepo.EmailExists(ctx, nil, email)
	if tErr != nil {
		return nil, fmt.Errorf("failed to check email: %w", tErr)
	}
	if taken {
		return nil, apierr.Duplicate("email already registered")
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, fmt.Errorf("failed to hash password: %w", hErr)
	}

	account := &domain.Account{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      domain.RoleManager,
	}

	var auditEntry *domain.AuditLogEntry
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		code, cErr := as.generateTenantCode(ctx, tx)
		if cErr != nil {
			return cErr
		}
		tenant := &domain.Tenant{
			ID:               uuid.New(),
			Name:             strings.TrimSpace(input.SalonName),
			Code:             code,
			ManagerAccountID: account.ID,
		}
		if _, tcErr := as.tenantRepo.Create(ctx, tx, []*domain.Tenant{tenant}); tcErr != nil {
			return fmt.Errorf("failed to create tenant: %w", tcErr)
		}
		account.TenantID = &tenant.ID
		if _, acErr := as.accountRepo.Create(ctx, tx, []*domain.Account{account}); acErr != nil {
			return fmt.Errorf("failed to create account: %w", acErr)
		}
		profile := &domain.Profile{
			ID:        uuid.New(),
			AccountID: account.ID,
			Approval:  domain.ApprovalActive,
		}
		if _, pcErr := as.profileRepo.Create(ctx, tx, []*domain.Profile{profile}); pcErr != nil {
			return fmt.Errorf("failed to create profile: %w", pcErr)
		}
		entry, aErr := as.auditService.Record(ctx, tx, tenant.ID, account.ID, nil, "auth:register:manager", nil)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.auditService.Announce(ctx, auditEntry)
	return as.issueSession(account, domain.ApprovalActive, 0)
}

// RegisterProfessional joins an existing salon by code. The profile starts
// pending and stays that way until a manager decides.
func (as *authService) RegisterProfessional(ctx context.Context, input RegisterProfessionalInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if vErr := validateCredentials(email, input.Password); vErr != nil {
		return nil, vErr
	}
	if strings.TrimSpace(input.FirstName) == "" {
		return nil, apierr.Validation("firstName", "required")
	}
	code := strings.ToUpper(strings.TrimSpace(input.TenantCode))
	if code == "" {
		return nil, apierr.Validation("salonCode", "required")
	}

	tenant, tErr := as.tenantRepo.GetByCode(ctx, nil, code)
	if tErr != nil {
		return nil, fmt.Errorf("failed to look up salon code: %w", tErr)
	}
	if tenant == nil {
		return nil, apierr.NotFound("salon code")
	}

	taken, eErr := as.accountRepo.EmailExists(ctx, nil, email)
	if eErr != nil {
		return nil, fmt.Errorf("failed to check email: %w", eErr)
	}
	if taken {
		return nil, apierr.Duplicate("email already registered")
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, fmt.Errorf("failed to hash password: %w", hErr)
	}

	account := &domain.Account{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Phone:     strings.TrimSpace(input.Phone),
		Role:      domain.RoleProfessional,
		TenantID:  &tenant.ID,
	}

	var auditEntry *domain.AuditLogEntry
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, acErr := as.accountRepo.Create(ctx, tx, []*domain.Account{account}); acErr != nil {
			return fmt.Errorf("failed to create account: %w", acErr)
		}
		profile := &domain.Profile{
			ID:        uuid.New(),
			AccountID: account.ID,
			CPF:       strings.TrimSpace(input.CPF),
			Approval:  domain.ApprovalPending,
		}
		if _, pcErr := as.profileRepo.Create(ctx, tx, []*domain.Profile{profile}); pcErr != nil {
			return fmt.Errorf("failed to create profile: %w", pcErr)
		}
		entry, aErr := as.auditService.Record(ctx, tx, tenant.ID, account.ID, nil, "auth:register:professional", nil)
		if aErr != nil {
			return aErr
		}
		auditEntry = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	as.auditService.Announce(ctx, auditEntry)
	as.notifier.ProfessionalRegistered(ctx, tenant.ID, account.FirstName+" "+account.LastName)
	return as.issueSession(account, domain.ApprovalPending, 0)
}

// Login verifies credentials and gates on approval state: pending
// professionals are told to wait, rejected ones are refused outright.
func (as *authService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, apierr.Unauthenticated("invalid credentials")
	}

	accounts, gErr := as.accountRepo.GetByEmails(ctx, nil, []string{email})
	if gErr != nil {
		return nil, fmt.Errorf("failed to load account: %w", gErr)
	}
	if len(accounts) == 0 {
		return nil, apierr.Unauthenticated("invalid credentials")
	}
	account := accounts[0]

	if cErr := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); cErr != nil {
		return nil, apierr.Unauthenticated("invalid credentials")
	}

	approval, aErr := as.approvalState(ctx, account)
	if aErr != nil {
		return nil, aErr
	}
	if account.Role == domain.RoleProfessional {
		switch approval {
		case domain.ApprovalPending:
			return nil, apierr.PendingApproval()
		case domain.ApprovalRejected:
			return nil, apierr.Forbidden("registration was rejected")
		}
	}

	return as.issueSession(account, approval, input.RememberDays)
}

// SetContextFromToken validates the token and rebuilds RequestData from
// current database state, so an approval revoked after issuance takes
// effect on the next request.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims, pErr := as.tokenService.Parse(tokenString)
	if pErr != nil {
		return ctx, pErr
	}
	accountID, _ := uuid.Parse(claims.Subject)

	accounts, gErr := as.accountRepo.GetByIDs(ctx, nil, []uuid.UUID{accountID})
	if gErr != nil {
		return ctx, fmt.Errorf("failed to load account: %w", gErr)
	}
	if len(accounts) == 0 {
		return ctx, apierr.Unauthenticated("account no longer exists")
	}
	account := accounts[0]

	approval, aErr := as.approvalState(ctx, account)
	if aErr != nil {
		return ctx, aErr
	}

	rd := &requestdata.RequestData{
		TokenString:   tokenString,
		AccountID:     account.ID,
		Role:          account.Role,
		ApprovalState: approval,
	}
	if account.TenantID != nil {
		rd.TenantID = *account.TenantID
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) approvalState(ctx context.Context, account *domain.Account) (domain.ApprovalState, error) {
	profiles, err := as.profileRepo.GetByAccountIDs(ctx, nil, []uuid.UUID{account.ID})
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}
	if len(profiles) == 0 {
		// Managers predating profile rows are treated as active.
		if account.Role == domain.RoleManager {
			return domain.ApprovalActive, nil
		}
		return "", apierr.Unauthenticated("profile missing")
	}
	return profiles[0].Approval, nil
}

func (as *authService) issueSession(account *domain.Account, approval domain.ApprovalState, rememberDays int) (*Session, error) {
	token, ttl, err := as.tokenService.Issue(account, approval, rememberDays)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, TTL: ttl, Account: account, Approval: approval}, nil
}

const tenantCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func (as *authService) generateTenantCode(ctx context.Context, tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		buf := make([]byte, 6)
		for i := range buf {
			n, rErr := rand.Int(rand.Reader, big.NewInt(int64(len(tenantCodeAlphabet))))
			if rErr != nil {
				return "", fmt.Errorf("failed to generate salon code: %w", rErr)
			}
			buf[i] = tenantCodeAlphabet[n.Int64()]
		}
		code := string(buf)
		exists, eErr := as.tenantRepo.CodeExists(ctx, tx, code)
		if eErr != nil {
			return "", fmt.Errorf("failed to check salon code: %w", eErr)
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free salon code")
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return apierr.Validation("email", "must be a valid address")
	}
	if len(password) < 8 {
		return apierr.Validation("password", "must be at least 8 characters")
	}
	return nil
}
