package services

import (
	"context"
	"testing"

	"reservation-system/internal/dto"
	"reservation-system/internal/entities"
	"reservation-system/internal/repositories"
	apperrors "reservation-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type auditingEquipmentRepo struct {
	repositories.EquipmentRepositoryInterface

	current *entities.Equipment
	updated *dto.UpdateEquipmentDTO
	audits  []entities.StockAudit
}

func (r *auditingEquipmentRepo) FindEquipmentForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	if r.current == nil || r.current.ID != id {
		return nil, apperrors.ErrNotFound
	}
	return r.current, nil
}

func (r *auditingEquipmentRepo) UpdateEquipmentInTx(ctx context.Context, tx pgx.Tx, id uint64, data dto.UpdateEquipmentDTO) error {
	r.updated = &data
	return nil
}

func (r *auditingEquipmentRepo) InsertStockAuditInTx(ctx context.Context, tx pgx.Tx, audit entities.StockAudit) error {
	r.audits = append(r.audits, audit)
	return nil
}

func newTestEquipmentService(repo *auditingEquipmentRepo) EquipmentServiceInterface {
	return NewEquipmentService(stubTxManager{}, repo, zap.NewNop())
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func TestUpdateEquipmentQuantityChangeWritesAudit(t *testing.T) {
	repo := &auditingEquipmentRepo{current: &entities.Equipment{ID: 1, Name: "Monoblock Chair", TotalQuantity: 200}}
	svc := newTestEquipmentService(repo)

	err := svc.UpdateEquipment(authedContext(9, entities.RoleStaff), 1, dto.UpdateEquipmentDTO{
		TotalQuantity: intPtr(180),
		Reason:        strPtr("20 chairs damaged in storm"),
	})

	require.NoError(t, err)
	require.Len(t, repo.audits, 1)
	audit := repo.audits[0]
	assert.Equal(t, uint64(1), audit.EquipmentID)
	assert.Equal(t, 200, audit.OldQuantity)
	assert.Equal(t, 180, audit.NewQuantity)
	assert.Equal(t, "20 chairs damaged in storm", audit.Reason)
	assert.Equal(t, uint64(9), audit.ActorID)
}

func TestUpdateEquipmentDefaultsAuditReason(t *testing.T) {
	repo := &auditingEquipmentRepo{current: &entities.Equipment{ID: 1, Name: "Monoblock Chair", TotalQuantity: 200}}
	svc := newTestEquipmentService(repo)

	err := svc.UpdateEquipment(authedContext(9, entities.RoleStaff), 1, dto.UpdateEquipmentDTO{
		TotalQuantity: intPtr(210),
	})

	require.NoError(t, err)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, "stock adjustment", repo.audits[0].Reason)
}

func TestUpdateEquipmentNameOnlySkipsAudit(t *testing.T) {
	repo := &auditingEquipmentRepo{current: &entities.Equipment{ID: 1, Name: "Monoblock Chair", TotalQuantity: 200}}
	svc := newTestEquipmentService(repo)

	err := svc.UpdateEquipment(authedContext(9, entities.RoleStaff), 1, dto.UpdateEquipmentDTO{
		Name: strPtr("Monoblock Chair (white)"),
	})

	require.NoError(t, err)
	assert.Empty(t, repo.audits)
	require.NotNil(t, repo.updated)
}

func TestUpdateEquipmentSameQuantitySkipsAudit(t *testing.T) {
	repo := &auditingEquipmentRepo{current: &entities.Equipment{ID: 1, Name: "Monoblock Chair", TotalQuantity: 200}}
	svc := newTestEquipmentService(repo)

	err := svc.UpdateEquipment(authedContext(9, entities.RoleStaff), 1, dto.UpdateEquipmentDTO{
		TotalQuantity: intPtr(200),
	})

	require.NoError(t, err)
	assert.Empty(t, repo.audits)
}

func TestUpdateEquipmentUnknownID(t *testing.T) {
	repo := &auditingEquipmentRepo{}
	svc := newTestEquipmentService(repo)

	err := svc.UpdateEquipment(authedContext(9, entities.RoleStaff), 99, dto.UpdateEquipmentDTO{
		TotalQuantity: intPtr(10),
	})

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
