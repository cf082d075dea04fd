// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en tests de casos de uso y handlers, y como referencia de la
// semántica esperada de los adaptadores PostgreSQL (mismas reglas de orden FIFO,
// decremento condicional y unicidad de series).
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// Store contiene todo el estado compartido. Las operaciones individuales toman
// el lock por operación; las transacciones del TxRunner se serializan entre sí
// con un mutex propio (ver tx_runner.go).
type Store struct {
	mu sync.RWMutex

	components map[string]*entity.Component
	vendors    map[string]*entity.Vendor
	batches    map[string]*entity.StockBatch
	products   map[string]*entity.Product
	bomEntries []*entity.BOMEntry
	assemblies map[string]*entity.Assembly
	serials    map[string]string // serial → assemblyID, unicidad de número de serie
	records    []*entity.ConsumptionRecord
	users      map[string]*entity.User
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		components: make(map[string]*entity.Component),
		vendors:    make(map[string]*entity.Vendor),
		batches:    make(map[string]*entity.StockBatch),
		products:   make(map[string]*entity.Product),
		assemblies: make(map[string]*entity.Assembly),
		serials:    make(map[string]string),
		users:      make(map[string]*entity.User),
	}
}

// sortBatchesFIFO ordena por fecha de recepción ascendente, ID como desempate.
func sortBatchesFIFO(batches []*entity.StockBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].DateReceived.Equal(batches[j].DateReceived) {
			return batches[i].ID < batches[j].ID
		}
		return batches[i].DateReceived.Before(batches[j].DateReceived)
	})
}

func cloneBatch(b *entity.StockBatch) *entity.StockBatch {
	c := *b
	return &c
}
