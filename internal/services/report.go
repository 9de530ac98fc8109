package services

import (
	"bytes"
	"context"
	"fmt"

	"reservation-system/internal/dto"
	"reservation-system/internal/repositories"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	GetSummary(ctx context.Context) (*dto.ReportSummaryDTO, error)
	GetReservationsByStatus(ctx context.Context, status string) ([]dto.ReservationDTO, error)
	ExportReservations(ctx context.Context) (*bytes.Buffer, string, error)
}

type ReportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{reportRepo: reportRepo, logger: logger}
}

func (s *ReportService) GetSummary(ctx context.Context) (*dto.ReportSummaryDTO, error) {
	return s.reportRepo.GetSummary(ctx)
}

func (s *ReportService) GetReservationsByStatus(ctx context.Context, status string) ([]dto.ReservationDTO, error) {
	return s.reportRepo.GetReservationsByStatus(ctx, status)
}

var exportHeaders = []string{
	"ID", "Borrower", "Occasion", "Phone", "Address",
	"Date", "Slot", "Status", "Items", "Created",
}

// ExportReservations renders the full reservation history as an xlsx
// workbook and returns the file contents with a suggested filename.
func (s *ReportService) ExportReservations(ctx context.Context) (*bytes.Buffer, string, error) {
	reservations, err := s.reportRepo.GetAllForExport(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("failed to close xlsx file", zap.Error(err))
		}
	}()

	const sheet = "Reservations"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetRowStyle(sheet, 1, 1, headerStyle)
	}

	for i, r := range reservations {
		borrower := fmt.Sprintf("%s %s", r.User.FirstName, r.User.LastName)
		row := []interface{}{
			r.ID, borrower, r.Occasion, r.PhoneNumber, r.FullAddress,
			r.ReservationDate, r.TimeSlot, r.Status, r.ItemsDisplay, r.CreatedAt,
		}
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, "", err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("reservations exported", zap.Int("rows", len(reservations)))
	return buf, "reservations.xlsx", nil
}
