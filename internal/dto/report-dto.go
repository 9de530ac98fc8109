package dto

type ReportSummaryDTO struct {
	TotalPending   int `json:"total_pending"`
	TotalApproved  int `json:"total_approved"`
	TotalBorrowed  int `json:"total_borrowed"`
	TotalCompleted int `json:"total_completed"`
}
