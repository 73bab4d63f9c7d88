package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salonledger/salonledger-backend/internal/data/repos"
	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/apierr"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
	"github.com/salonledger/salonledger-backend/internal/requestdata"
)

type ProfessionalStats struct {
	ProfessionalID uuid.UUID `json:"professionalId"`
	Name           string    `json:"name"`
	Cuts           int       `json:"cuts"`
	Revenue        int       `json:"revenue"`
	Commission     int       `json:"commission"`
	Deductions     int       `json:"deductions"`
}

type DailyRevenue struct {
	Day     string `json:"day"`
	Revenue int    `json:"revenue"`
}

// DashboardStats aggregates a tenant's confirmed appointments. Rejected
// appointments count as deductions against the professional who submitted
// them; pending ones only feed PendingAppointments.
type DashboardStats struct {
	TotalCuts           int                  `json:"totalCuts"`
	TotalRevenue        int                  `json:"totalRevenue"`
	TotalCommission     int                  `json:"totalCommission"`
	PendingAppointments int                  `json:"pendingAppointments"`
	Professionals       []*ProfessionalStats `json:"professionals"`
	RevenueByDay        []*DailyRevenue      `json:"revenueByDay"`
}

type StatsService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	log             *logger.Logger
	appointmentRepo repos.AppointmentRepo
	accountRepo     repos.AccountRepo
}

func NewStatsService(log *logger.Logger, appointmentRepo repos.AppointmentRepo, accountRepo repos.AccountRepo) StatsService {
	serviceLog := log.With("service", "StatsService")
	return &statsService{
		log:             serviceLog,
		appointmentRepo: appointmentRepo,
		accountRepo:     accountRepo,
	}
}

func (ss *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthenticated("no request data in context")
	}
	if rd.Role != domain.RoleManager {
		return nil, apierr.Forbidden("only managers view salon stats")
	}

	appointments, aErr := ss.appointmentRepo.ListByTenant(ctx, nil, rd.TenantID, repos.AppointmentListFilter{})
	if aErr != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", aErr)
	}

	accounts, gErr := ss.accountRepo.ListByTenant(ctx, nil, rd.TenantID, domain.RoleProfessional)
	if gErr != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", gErr)
	}
	names := make(map[uuid.UUID]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.FirstName + " " + a.LastName
	}

	stats := &DashboardStats{
		Professionals: []*ProfessionalStats{},
		RevenueByDay:  []*DailyRevenue{},
	}
	byProfessional := map[uuid.UUID]*ProfessionalStats{}
	byDay := map[string]int{}

	for _, appt := range appointments {
		pro := byProfessional[appt.ProfessionalID]
		if pro == nil {
			pro = &ProfessionalStats{ProfessionalID: appt.ProfessionalID, Name: names[appt.ProfessionalID]}
			byProfessional[appt.ProfessionalID] = pro
		}

		switch appt.Status {
		case domain.AppointmentPending:
			stats.PendingAppointments++
		case domain.AppointmentRejected:
			pro.Deductions += commissionOf(appt)
		case domain.AppointmentConfirmed:
			commission := commissionOf(appt)
			stats.TotalCuts++
			stats.TotalRevenue += appt.Price
			stats.TotalCommission += commission
			pro.Cuts++
			pro.Revenue += appt.Price
			pro.Commission += commission
			byDay[appt.Date.Format("2006-01-02")] += appt.Price
		}
	}

	for _, a := range accounts {
		if pro := byProfessional[a.ID]; pro != nil {
			stats.Professionals = append(stats.Professionals, pro)
		} else {
			stats.Professionals = append(stats.Professionals, &ProfessionalStats{ProfessionalID: a.ID, Name: names[a.ID]})
		}
	}

	today := time.Now().Truncate(24 * time.Hour)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format("2006-01-02")
		stats.RevenueByDay = append(stats.RevenueByDay, &DailyRevenue{Day: day, Revenue: byDay[day]})
	}
	return stats, nil
}

func commissionOf(appt *domain.Appointment) int {
	return appt.Price * appt.CommissionRate / 100
}
