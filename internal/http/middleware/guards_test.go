package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/http/response"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
)

func guardedRouter(state domain.ApprovalState) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		rd := &requestdata.RequestData{
			AccountID:     uuid.New(),
			TenantID:      uuid.New(),
			Role:          domain.RoleProfessional,
			ApprovalState: state,
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	})
	r.POST("/api/appointments", RequireActive(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestRequireActiveDistinguishesPendingFromRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name     string
		state    domain.ApprovalState
		wantCode int
		wantErr  string
	}{
		{"active", domain.ApprovalActive, http.StatusCreated, ""},
		{"pending", domain.ApprovalPending, http.StatusForbidden, "pending_approval"},
		{"rejected", domain.ApprovalRejected, http.StatusForbidden, "forbidden"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r := guardedRouter(tc.state)

			req := httptest.NewRequest(http.MethodPost, "/api/appointments", nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, tc.wantCode)
			}
			if tc.wantErr == "" {
				return
			}
			var envelope response.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tc.wantErr {
				t.Fatalf("unexpected error code: got=%q want=%q", envelope.Error.Code, tc.wantErr)
			}
		})
	}
}
