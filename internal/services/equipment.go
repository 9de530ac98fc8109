package services

import (
	"context"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"
	"reservation-system/pkg/types"
	"reservation-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, id uint64) error
	GetStockAudit(ctx context.Context, equipmentID uint64) ([]dto.StockAuditDTO, error)
}

type EquipmentService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	return s.equipmentRepo.GetEquipments(ctx, filter)
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	e, err := s.equipmentRepo.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	d := dto.EquipmentDTO{
		ID:            e.ID,
		Name:          e.Name,
		Description:   e.Description,
		TotalQuantity: e.TotalQuantity,
	}
	if e.CreatedAt != nil {
		d.CreatedAt = e.CreatedAt.Format("2006-01-02, 15:04:05")
	}
	if e.UpdatedAt != nil {
		d.UpdatedAt = e.UpdatedAt.Format("2006-01-02, 15:04:05")
	}
	return &d, nil
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, data dto.CreateEquipmentDTO) (uint64, error) {
	id, err := s.equipmentRepo.CreateEquipment(ctx, data)
	if err != nil {
		return 0, err
	}
	s.logger.Info("equipment created", zap.Uint64("equipmentId", id), zap.String("name", data.Name))
	return id, nil
}

// UpdateEquipment applies the change in a transaction. When the total
// quantity moves, the old row is read under a row lock first and an audit
// entry records who changed it and why.
func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, data dto.UpdateEquipmentDTO) error {
	actorID, err := utils.UserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.equipmentRepo.FindEquipmentForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := s.equipmentRepo.UpdateEquipmentInTx(ctx, tx, id, data); err != nil {
			return err
		}

		if data.TotalQuantity != nil && *data.TotalQuantity != existing.TotalQuantity {
			reason := "stock adjustment"
			if data.Reason != nil && *data.Reason != "" {
				reason = *data.Reason
			}
			return s.equipmentRepo.InsertStockAuditInTx(ctx, tx, entities.StockAudit{
				EquipmentID: id,
				OldQuantity: existing.TotalQuantity,
				NewQuantity: *data.TotalQuantity,
				Reason:      reason,
				ActorID:     actorID,
			})
		}
		return nil
	})
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id uint64) error {
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}
	s.logger.Info("equipment deleted", zap.Uint64("equipmentId", id))
	return nil
}

func (s *EquipmentService) GetStockAudit(ctx context.Context, equipmentID uint64) ([]dto.StockAuditDTO, error) {
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.equipmentRepo.GetStockAudit(ctx, equipmentID)
}
