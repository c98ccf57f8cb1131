package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"

	"github.com/Picancianmartin/UniformesCoachSite/internal/stock"
)

type seedProduct struct {
	Name        string
	Description string
	Collection  string
	Price       string
	IsKit       bool
	ReadyToShip bool
	Stock       stock.Table
}

// SeedProducts loads the starter catalog. Idempotent on product name.
func SeedProducts(db *sql.DB) error {
	ctx := context.Background()

	products := []seedProduct{
		{
			Name:        "Camiseta Treino",
			Description: "Camiseta dry-fit com escudo bordado.",
			Collection:  "Linha Treino",
			Price:       "59.90",
			ReadyToShip: true,
			Stock: stock.Table{
				Standard: map[string]int{"P": 10, "M": 15, "G": 12, "GG": 6},
			},
		},
		{
			Name:        "Conjunto Inverno",
			Description: "Blusa de moletom e calça, vendidos como kit.",
			Collection:  "Inverno 2026",
			Price:       "189.90",
			IsKit:       true,
			ReadyToShip: true,
			Stock: stock.Table{
				Top:    map[string]int{"P": 5, "M": 8, "G": 8},
				Bottom: map[string]int{"P": 5, "M": 8, "G": 8},
			},
		},
		{
			Name:        "Uniforme Personalizado",
			Description: "Produzido sob encomenda com nome e número.",
			Collection:  "Linha Treino",
			Price:       "119.90",
		},
	}

	query := `INSERT INTO products (name, description, collection, price, is_kit, ready_to_ship, stock)
	          SELECT $1, $2, $3, $4, $5, $6, $7
	          WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)`

	for _, p := range products {
		stockJSON, err := json.Marshal(p.Stock)
		if err != nil {
			return err
		}

		res, err := db.ExecContext(ctx, query,
			p.Name, p.Description, p.Collection, p.Price, p.IsKit, p.ReadyToShip, stockJSON,
		)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Printf("product seeded: %s", p.Name)
		}
	}
	return nil
}
