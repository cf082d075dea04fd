// seed puebla la base de datos con datos de demostración de planta:
// un usuario admin, proveedores, componentes con lotes recibidos y un
// producto con su BOM. Es idempotente: si el dato ya existe lo salta.
//
// Uso: go run ./cmd/seed
// Requiere las mismas variables de entorno que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Manufactura-api/pkg/config"
	"github.com/jhoicas/Manufactura-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	componentRepo := postgres.NewComponentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)

	now := time.Now()

	// El producto de demo marca si la siembra ya corrió.
	if _, gerr := productRepo.GetByModelNumber("RBT-100"); gerr == nil {
		log.Info().Msg("los datos de demostración ya existen, nada que hacer")
		return
	}

	// Usuario admin de demo (password: admin12345)
	existingAdmin, err := userRepo.FindByEmail("admin@planta.local")
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario admin")
	}
	if existingAdmin == nil {
		hash, herr := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
		if herr != nil {
			log.Fatal().Err(herr).Msg("hash de contraseña")
		}
		u := &entity.User{
			ID:           uuid.NewString(),
			Email:        "admin@planta.local",
			PasswordHash: string(hash),
			Name:         "Admin Planta",
			Role:         entity.RoleAdmin,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(u); err != nil {
			log.Fatal().Err(err).Msg("crear usuario admin")
		}
		log.Info().Str("email", u.Email).Msg("usuario admin creado")
	}

	// Proveedor
	vendor := &entity.Vendor{
		ID:        uuid.NewString(),
		Name:      "Electropartes del Norte",
		Contact:   "ventas@electropartes.example",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := vendorRepo.Create(vendor); err != nil {
		log.Fatal().Err(err).Msg("crear proveedor")
	}

	// Componentes con lotes en orden FIFO (dos recepciones del motor)
	type seedBatch struct {
		number   string
		qty      int64
		cost     string
		daysAgo  int
		expiryIn int // días; 0 = sin vencimiento
	}
	type seedComponent struct {
		sku, name, category string
		minimum             int64
		batches             []seedBatch
	}
	comps := []seedComponent{
		{
			sku: "MTR-12V", name: "Motor DC 12V", category: "electrónico", minimum: 20,
			batches: []seedBatch{
				{number: "L-2401", qty: 50, cost: "12.50", daysAgo: 30},
				{number: "L-2407", qty: 80, cost: "11.90", daysAgo: 7},
			},
		},
		{
			sku: "CHS-ALU", name: "Chasis de aluminio", category: "mecánico", minimum: 10,
			batches: []seedBatch{
				{number: "L-9911", qty: 40, cost: "33.00", daysAgo: 14},
			},
		},
		{
			sku: "ADH-EPX", name: "Adhesivo epóxico", category: "consumible", minimum: 5,
			batches: []seedBatch{
				{number: "L-EPX-3", qty: 25, cost: "4.75", daysAgo: 3, expiryIn: 180},
			},
		},
	}

	componentIDs := make(map[string]string)
	for _, sc := range comps {
		existing, gerr := componentRepo.GetBySKU(sc.sku)
		if gerr == nil {
			componentIDs[sc.sku] = existing.ID
			log.Info().Str("sku", sc.sku).Msg("componente ya existe, se salta")
			continue
		}
		comp := &entity.Component{
			ID:              uuid.NewString(),
			SKU:             sc.sku,
			Name:            sc.name,
			Category:        sc.category,
			MinimumQuantity: sc.minimum,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := componentRepo.Create(comp); err != nil {
			log.Fatal().Err(err).Str("sku", sc.sku).Msg("crear componente")
		}
		componentIDs[sc.sku] = comp.ID

		for _, b := range sc.batches {
			cost, cerr := decimal.NewFromString(b.cost)
			if cerr != nil {
				log.Fatal().Err(cerr).Msg("costo inválido")
			}
			var expiry *time.Time
			if b.expiryIn > 0 {
				e := now.AddDate(0, 0, b.expiryIn)
				expiry = &e
			}
			batch := &entity.StockBatch{
				ID:              uuid.NewString(),
				ComponentID:     comp.ID,
				VendorID:        vendor.ID,
				BatchNumber:     b.number,
				InitialQuantity: b.qty,
				CurrentQuantity: b.qty,
				UnitCost:        cost,
				DateReceived:    now.AddDate(0, 0, -b.daysAgo),
				ExpiryDate:      expiry,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := batchRepo.Create(batch); err != nil {
				log.Fatal().Err(err).Str("batch", b.number).Msg("crear lote")
			}
		}
		log.Info().Str("sku", sc.sku).Int("lotes", len(sc.batches)).Msg("componente sembrado")
	}

	// Producto de demo con BOM: 1 motor + 1 chasis + 2 de adhesivo
	product := &entity.Product{
		ID:          uuid.NewString(),
		Name:        "Robot limpiador RBT-100",
		ModelNumber: "RBT-100",
		Description: "Unidad de demostración para pruebas de capacidad y commit",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := productRepo.Create(product); err != nil {
		log.Fatal().Err(err).Msg("crear producto")
	}
	bom := []struct {
		sku string
		qty int64
	}{
		{sku: "MTR-12V", qty: 1},
		{sku: "CHS-ALU", qty: 1},
		{sku: "ADH-EPX", qty: 2},
	}
	for _, line := range bom {
		entry := &entity.BOMEntry{
			ID:              uuid.NewString(),
			ProductID:       product.ID,
			ComponentID:     componentIDs[line.sku],
			QuantityPerUnit: line.qty,
			CreatedAt:       now,
		}
		if err := bomRepo.Add(entry); err != nil {
			log.Fatal().Err(err).Str("sku", line.sku).Msg("crear línea de BOM")
		}
	}

	log.Info().Str("model", product.ModelNumber).Msg("datos de demostración listos")
}
