package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
)

type MeHandler struct {
	accountRepo repos.AccountRepo
	profileRepo repos.ProfileRepo
	tenantRepo  repos.TenantRepo
}

func NewMeHandler(accountRepo repos.AccountRepo, profileRepo repos.ProfileRepo, tenantRepo repos.TenantRepo) *MeHandler {
	return &MeHandler{accountRepo: accountRepo, profileRepo: profileRepo, tenantRepo: tenantRepo}
}

func (mh *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		response.RespondFromError(c, apierr.Unauthenticated("no request data in context"))
		return
	}

	accounts, err := mh.accountRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.AccountID})
	if err != nil || len(accounts) == 0 {
		response.RespondFromError(c, apierr.NotFound("account"))
		return
	}
	payload := gin.H{"account": accounts[0], "approvalState": rd.ApprovalState}

	if profiles, pErr := mh.profileRepo.GetByAccountIDs(ctx, nil, []uuid.UUID{rd.AccountID}); pErr == nil && len(profiles) > 0 {
		payload["profile"] = profiles[0]
	}
	if rd.TenantID != uuid.Nil {
		if tenants, tErr := mh.tenantRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.TenantID}); tErr == nil && len(tenants) > 0 {
			payload["salon"] = tenants[0]
		}
	}
	response.RespondOK(c, payload)
}
