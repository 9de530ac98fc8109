package repositories

import (
	"context"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	GetSummary(ctx context.Context) (*dto.ReportSummaryDTO, error)
	GetReservationsByStatus(ctx context.Context, status string) ([]dto.ReservationDTO, error)
	GetAllForExport(ctx context.Context) ([]dto.ReservationDTO, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) GetSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	var summary dto.ReportSummaryDTO
	err := r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = $1),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3),
			COUNT(*) FILTER (WHERE status = $4)
		FROM reservations
	`, entities.StatusPending, entities.StatusApproved, entities.StatusPickedUp, entities.StatusReturned).Scan(
		&summary.TotalPending,
		&summary.TotalApproved,
		&summary.TotalBorrowed,
		&summary.TotalCompleted,
	)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *ReportRepository) GetReservationsByStatus(ctx context.Context, status string) ([]dto.ReservationDTO, error) {
	return r.queryReservations(ctx, `
		SELECT r.id, r.occasion, r.notes, r.phone_number, r.full_address,
			r.reservation_date, r.time_slot, r.status, r.id_picture, r.selfie_picture,
			r.created_at, r.updated_at,
			u.id, u.username, u.role, u.email, u.first_name, u.last_name,
			`+itemsDisplaySubquery+` AS items_display
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		WHERE r.status = $1
		ORDER BY r.reservation_date DESC, r.id DESC
	`, status)
}

func (r *ReportRepository) GetAllForExport(ctx context.Context) ([]dto.ReservationDTO, error) {
	return r.queryReservations(ctx, `
		SELECT r.id, r.occasion, r.notes, r.phone_number, r.full_address,
			r.reservation_date, r.time_slot, r.status, r.id_picture, r.selfie_picture,
			r.created_at, r.updated_at,
			u.id, u.username, u.role, u.email, u.first_name, u.last_name,
			`+itemsDisplaySubquery+` AS items_display
		FROM reservations r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.reservation_date DESC, r.id DESC
	`)
}

func (r *ReportRepository) queryReservations(ctx context.Context, query string, args ...any) ([]dto.ReservationDTO, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []dto.ReservationDTO
	for rows.Next() {
		res, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}
