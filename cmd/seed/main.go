// seed carga datos de prueba para el flujo de validación de proveedores:
// un cliente con vehículo, dos pedidos y tres facturas con proveedor genérico
// (dos pendientes en el primer pedido, una en el segundo) con sus partidas.
//
// Uso: go run ./cmd/seed
// Requiere la misma configuración de BD que cmd/api (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/infrastructure/postgres"
	"github.com/romo2920000/autocenterV2/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewOrderInvoiceRepository(pool)
	productRepo := postgres.NewXMLProductRepository(pool)

	now := time.Now().UTC()
	vehicleID := uuid.New().String()

	// El cliente y el vehículo se insertan directo: los repositorios de
	// lectura no tienen Create porque la validación nunca los escribe.
	customerID := uuid.New().String()
	if _, err := pool.Exec(ctx,
		`INSERT INTO customers (id, nombre_completo, email, telefono, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		customerID, "María Guadalupe Romo", "mgromo@example.com", "4491234567", now,
	); err != nil {
		fmt.Fprintf(os.Stderr, "insert customer: %v\n", err)
		os.Exit(1)
	}
	if _, err := pool.Exec(ctx,
		`INSERT INTO vehicles (id, marca, modelo, anio, placas)
		 VALUES ($1, $2, $3, $4, $5)`,
		vehicleID, "Nissan", "Versa", 2021, "AGS-123-A",
	); err != nil {
		fmt.Fprintf(os.Stderr, "insert vehicle: %v\n", err)
		os.Exit(1)
	}

	orders := []*entity.Order{
		{
			Folio:                        "PED-2025-0001",
			Cliente:                      "María Guadalupe Romo",
			CustomerID:                   customerID,
			VehicleID:                    &vehicleID,
			HasPendingSupplierValidation: true,
			CreatedAt:                    now,
			UpdatedAt:                    now,
		},
		{
			Folio:                        "PED-2025-0002",
			Cliente:                      "Cliente Mostrador",
			HasPendingSupplierValidation: true,
			CreatedAt:                    now,
			UpdatedAt:                    now,
		},
	}
	for _, o := range orders {
		if err := orderRepo.Create(ctx, o); err != nil {
			fmt.Fprintf(os.Stderr, "insert order %s: %v\n", o.Folio, err)
			os.Exit(1)
		}
	}

	invoices := []*entity.OrderInvoice{
		{
			OrderID:                   orders[0].ID,
			InvoiceFolio:              "FAC-A-1001",
			Proveedor:                 "REFACCIONES EL BAJÍO",
			RFCProveedor:              "REB850214QX3",
			TotalAmount:               decimal.NewFromFloat(4830.00),
			Nuevos:                    3,
			PendingSupplierValidation: true,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			OrderID:                   orders[0].ID,
			InvoiceFolio:              "FAC-A-1002",
			Proveedor:                 "AUTOPARTES GENÉRICAS SA",
			TotalAmount:               decimal.NewFromFloat(1215.50),
			Nuevos:                    1,
			PendingSupplierValidation: true,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			OrderID:                   orders[1].ID,
			InvoiceFolio:              "FAC-B-0045",
			Proveedor:                 "PROVEEDOR GENÉRICO",
			TotalAmount:               decimal.NewFromFloat(760.00),
			Nuevos:                    2,
			PendingSupplierValidation: true,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
	}
	for _, inv := range invoices {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			fmt.Fprintf(os.Stderr, "insert invoice %s: %v\n", inv.InvoiceFolio, err)
			os.Exit(1)
		}
		for i := 0; i < inv.Nuevos; i++ {
			price := decimal.NewFromFloat(float64(150 + i*35))
			p := &entity.XMLProduct{
				InvoiceID:     inv.ID,
				Descripcion:   fmt.Sprintf("Refacción sin catálogo %d (%s)", i+1, inv.InvoiceFolio),
				Cantidad:      decimal.NewFromInt(1),
				ValorUnitario: price,
				Importe:       price,
				Nuevo:         true,
				CreatedAt:     now,
			}
			if err := productRepo.Create(ctx, p); err != nil {
				fmt.Fprintf(os.Stderr, "insert xml product: %v\n", err)
				os.Exit(1)
			}
		}
	}

	fmt.Printf("Seed completado: %d pedidos, %d facturas pendientes de validación\n",
		len(orders), len(invoices))
}
