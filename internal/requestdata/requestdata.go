package requestdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
)

var requestDataKey = struct{}{}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}

// RequestData carries the authenticated caller through the request context.
// TenantID is the zero UUID for accounts that have not joined a tenant yet.
type RequestData struct {
	TokenString   string
	AccountID     uuid.UUID
	TenantID      uuid.UUID
	Role          domain.Role
	ApprovalState domain.ApprovalState
}
