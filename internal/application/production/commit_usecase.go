package production

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/allocation"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// maxCommitAttempts acota los reintentos ante conflictos de concurrencia:
// cada reintento vuelve a leer un snapshot fresco y replanifica.
const maxCommitAttempts = 3

// CommitUseCase ejecuta una corrida de producción: resuelve el BOM, planifica
// la asignación FIFO (o valida el override manual), y dentro de UNA transacción
// descuenta los lotes, crea un Assembly por número de serie y deja el rastro
// de consumo lote → serie. Si cualquier paso falla no se persiste nada.
type CommitUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
}

// NewCommitUseCase construye el caso de uso.
func NewCommitUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
) *CommitUseCase {
	return &CommitUseCase{txRunner: txRunner, productRepo: productRepo, bomRepo: bomRepo}
}

// CommitProduction es el punto de entrada del commit. userID viene del token y
// se registra como created_by en los ensamblajes (se pasa, no se interpreta).
//
// Fases por intento (el orden importa):
//  1. Planificación: leer lotes bloqueados y armar/validar el plan por
//     componente. Cualquier componente corto aborta ANTES de mutar nada.
//  2. Verificación defensiva: re-chequear que cada plan suma exacto.
//  3. Commit: decrementos condicionales + ensamblajes + registros de consumo.
//
// Un conflicto de concurrencia (otro commit ganó un lote) revierte la
// transacción y se reintenta con snapshot fresco hasta maxCommitAttempts.
func (uc *CommitUseCase) CommitProduction(ctx context.Context, userID string, in dto.CommitProductionRequest) (*dto.CommitProductionResponse, error) {
	serials, err := validateSerials(in.SerialNumbers, in.UnitsRequested)
	if err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	entries, err := uc.bomRepo.ListByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyBOM
	}

	overrides, err := indexOverrides(in.OverridePlan, entries)
	if err != nil {
		return nil, err
	}

	var assemblyIDs []string
	for attempt := 1; ; attempt++ {
		assemblyIDs = nil
		err = uc.txRunner.Run(ctx, func(
			batchRepo repository.StockBatchRepository,
			assemblyRepo repository.AssemblyRepository,
			consumptionRepo repository.ConsumptionRecordRepository,
		) error {
			ids, err := uc.commitInTx(ctx, batchRepo, assemblyRepo, consumptionRepo,
				userID, in, entries, overrides, serials)
			if err != nil {
				return err
			}
			assemblyIDs = ids
			return nil
		})

		if err == nil {
			return &dto.CommitProductionResponse{ProductID: in.ProductID, AssemblyIDs: assemblyIDs}, nil
		}
		if errors.Is(err, domain.ErrPartialCommit) {
			// Descuadre potencial de stock: la reversión no pudo completarse.
			// Nunca se silencia: alarma distinta para conciliación manual.
			log.Error().Err(err).
				Str("product_id", in.ProductID).
				Str("user_id", userID).
				Str("alert", "STOCK_RECONCILIATION_REQUIRED").
				Msg("commit de producción dejó stock potencialmente inconsistente")
			return nil, err
		}
		if errors.Is(err, domain.ErrConcurrentConflict) && attempt < maxCommitAttempts {
			continue
		}
		return nil, err
	}
}

// commitInTx corre las tres fases dentro de la transacción ya abierta.
func (uc *CommitUseCase) commitInTx(
	ctx context.Context,
	batchRepo repository.StockBatchRepository,
	assemblyRepo repository.AssemblyRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
	userID string,
	in dto.CommitProductionRequest,
	entries []*entity.BOMEntry,
	overrides map[string]allocation.Plan,
	serials []string,
) ([]string, error) {
	// Fase 1: planificación con filas bloqueadas. Fail-fast: si un componente
	// no alcanza, se aborta aquí y ningún lote ha sido tocado todavía.
	plans := make(map[string]allocation.Plan, len(entries))
	for _, entry := range entries {
		totalRequired := entry.QuantityPerUnit * in.UnitsRequested

		batches, err := batchRepo.ListAvailableForUpdate(ctx, entry.ComponentID)
		if err != nil {
			return nil, err
		}

		if manual, ok := overrides[entry.ComponentID]; ok {
			if err := allocation.ValidatePlan(entry.ComponentID, manual, totalRequired, batches); err != nil {
				return nil, err
			}
			plans[entry.ComponentID] = manual
			continue
		}

		plan, err := allocation.Allocate(entry.ComponentID, batches, totalRequired)
		if err != nil {
			return nil, err
		}
		plans[entry.ComponentID] = plan
	}

	// Fase 2: re-verificación defensiva de sumas antes de mutar.
	for _, entry := range entries {
		want := entry.QuantityPerUnit * in.UnitsRequested
		if got := plans[entry.ComponentID].Total(); got != want {
			return nil, fmt.Errorf("plan del componente %s suma %d, se esperaban %d: %w",
				entry.ComponentID, got, want, domain.ErrInvalidInput)
		}
	}

	// Fase 3a: decrementos condicionales. El decremento falla (y revierte toda
	// la transacción) si otra corrida consumió el lote entre lectura y escritura.
	for _, entry := range entries {
		for _, line := range plans[entry.ComponentID] {
			if err := batchRepo.Decrement(ctx, line.BatchID, line.QuantityTaken); err != nil {
				return nil, err
			}
		}
	}

	// Fase 3b: un Assembly por serie (orden de serie ascendente para que la
	// atribución lote → serie sea reproducible) y su rastro de consumo.
	now := time.Now()
	assemblyIDs := make([]string, len(serials))
	for i, serial := range serials {
		assembly := &entity.Assembly{
			ID:           uuid.New().String(),
			SerialNumber: serial,
			ProductID:    in.ProductID,
			Status:       entity.AssemblyStatusInProgress,
			ProducedAt:   now,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := assemblyRepo.Create(ctx, assembly); err != nil {
			return nil, err
		}
		assemblyIDs[i] = assembly.ID
	}

	for _, entry := range entries {
		slices, err := allocation.DistributeAcrossUnits(
			plans[entry.ComponentID], entry.QuantityPerUnit, len(serials))
		if err != nil {
			return nil, err
		}
		for u, slice := range slices {
			for _, line := range slice {
				record := &entity.ConsumptionRecord{
					ID:           uuid.New().String(),
					AssemblyID:   assemblyIDs[u],
					BatchID:      line.BatchID,
					ComponentID:  entry.ComponentID,
					QuantityUsed: line.QuantityTaken,
					CreatedAt:    now,
				}
				if err := consumptionRepo.Create(ctx, record); err != nil {
					return nil, err
				}
			}
		}
	}

	return assemblyIDs, nil
}

// validateSerials exige exactamente una serie por unidad, sin vacíos ni repetidos,
// y las devuelve en orden ascendente (el orden de atribución del reparto).
func validateSerials(serials []string, units int64) ([]string, error) {
	if units <= 0 || int64(len(serials)) != units {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(serials))
	for _, s := range serials {
		if s == "" || seen[s] {
			return nil, domain.ErrInvalidInput
		}
		seen[s] = true
	}
	ordered := make([]string, len(serials))
	copy(ordered, serials)
	sort.Strings(ordered)
	return ordered, nil
}

// indexOverrides valida que cada plan manual refiera a un componente del BOM
// y lo indexa por componente. La validación de exactitud/disponibilidad se hace
// dentro de la transacción, contra los lotes ya bloqueados.
func indexOverrides(overrides []dto.OverridePlanDTO, entries []*entity.BOMEntry) (map[string]allocation.Plan, error) {
	if len(overrides) == 0 {
		return nil, nil
	}
	inBOM := make(map[string]bool, len(entries))
	for _, e := range entries {
		inBOM[e.ComponentID] = true
	}
	indexed := make(map[string]allocation.Plan, len(overrides))
	for _, ov := range overrides {
		if !inBOM[ov.ComponentID] {
			return nil, fmt.Errorf("override para componente %s fuera del BOM: %w",
				ov.ComponentID, domain.ErrInvalidInput)
		}
		if _, dup := indexed[ov.ComponentID]; dup {
			return nil, domain.ErrInvalidInput
		}
		plan := make(allocation.Plan, 0, len(ov.Plan))
		for _, line := range ov.Plan {
			plan = append(plan, allocation.BatchLine{BatchID: line.BatchID, QuantityTaken: line.QuantityTaken})
		}
		indexed[ov.ComponentID] = plan
	}
	return indexed, nil
}
