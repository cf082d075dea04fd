package production_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/domain"
)

// Escenario C sobre los repos reales: P requiere 2×X y 1×Y; X=20, Y=9 → 9, limita Y.
func TestGetCapacity_MinimoYComponenteLimitante(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Router industrial", "RTR-100")
	f.addBOMEntry(productID, "comp-x", 2)
	f.addBOMEntry(productID, "comp-y", 1)
	f.addBatch("bx1", "comp-x", 12, 1)
	f.addBatch("bx2", "comp-x", 8, 2)
	f.addBatch("by1", "comp-y", 9, 1)

	resp, err := f.capacity.GetCapacity(ctx(), productID)
	require.NoError(t, err)

	assert.Equal(t, int64(9), resp.MaxProducible)
	assert.Equal(t, []string{"comp-y"}, resp.LimitingComponents)
}

func TestGetCapacity_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.capacity.GetCapacity(ctx(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Producto sin BOM: capacidad 0 reportada, no error (la UI muestra la alerta
// de configuración); el commit sí lo rechaza con ErrEmptyBOM.
func TestGetCapacity_BOMVacioReportaCero(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Prototipo sin BOM", "PROTO-1")

	resp, err := f.capacity.GetCapacity(ctx(), productID)
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.MaxProducible)
	assert.Empty(t, resp.LimitingComponents)
}

// La capacidad es un snapshot consultivo: consultarla no reserva ni muta stock.
func TestGetCapacity_NoMutaStock(t *testing.T) {
	f := newFixture()
	productID := f.addProduct("Sensor", "SNS-7")
	f.addBOMEntry(productID, "comp-x", 3)
	f.addBatch("bx1", "comp-x", 30, 1)

	_, err := f.capacity.GetCapacity(ctx(), productID)
	require.NoError(t, err)
	_, err = f.capacity.GetCapacity(ctx(), productID)
	require.NoError(t, err)

	assert.Equal(t, int64(30), f.totalAvailable("comp-x"))
}
