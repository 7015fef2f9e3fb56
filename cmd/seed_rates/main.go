// seed_rates genera un script SQL para poblar la tabla de tarifas (pricing_rules)
// a partir de un CSV exportado desde la grilla de tarifas de la agencia.
//
// Uso: go run ./cmd/seed_rates [ruta/tarifs.csv]
// Por defecto busca tarifs.csv en el directorio actual. El CSV usa punto y coma
// como separador y puede venir en ISO-8859-1 (export típico de Excel francés):
//
//	pays;type_envoi;unite;prix;devise
//	France;standard;kg;10.00;EUR
//	Gabon;maritime;cbm;150000;XAF
//
// Escribe: internal/infrastructure/postgres/migrations/002_seed_rates.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
)

type rateRow struct {
	country  string
	shipType string
	unit     string
	price    decimal.Decimal
	currency string
}

func main() {
	csvPath := "tarifs.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := parseRates(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de tarifas")
		os.Exit(1)
	}

	// Orden estable por (país, tipo) para que el script sea diffeable
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].country != rows[j].country {
			return rows[i].country < rows[j].country
		}
		return rows[i].shipType < rows[j].shipType
	})

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_rates.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Tarifas por país destino y tipo de envío\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " (cmd/seed_rates)\n\n")
	for _, r := range rows {
		fmt.Fprintf(out, "INSERT INTO pricing_rules (id, country_code, shipping_type, unit_type, price_per_unit, currency)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid()::text, '%s', '%s', '%s', %s, '%s')\n",
			escapeSQL(r.country), r.shipType, r.unit, r.price.String(), r.currency)
		out.WriteString("ON CONFLICT (country_code, shipping_type) DO UPDATE\n")
		out.WriteString("  SET unit_type = EXCLUDED.unit_type, price_per_unit = EXCLUDED.price_per_unit, currency = EXCLUDED.currency, updated_at = now();\n")
	}

	fmt.Printf("Generado %s: %d tarifas\n", outPath, len(rows))
}

// parseRates lee el CSV (separador ';', ISO-8859-1 transparente) y valida cada
// fila con las mismas reglas del dominio: tipo de envío conocido, unidad kg o
// cbm, precio no negativo y divisa de 3 letras.
func parseRates(f io.Reader) ([]rateRow, error) {
	// Los exports de Excel en francés suelen venir en Latin-1; UTF-8 puro
	// pasa intacto por el decodificador salvo los bytes de acentos.
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var rows []rateRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "pays") {
			continue // encabezado
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("fila %d: se esperan 5 columnas (pays;type_envoi;unite;prix;devise)", i+1)
		}
		country := pricing.NormalizeCountry(rec[0])
		shipType := strings.ToLower(strings.TrimSpace(rec[1]))
		unit := strings.ToLower(strings.TrimSpace(rec[2]))
		currency := strings.ToUpper(strings.TrimSpace(rec[4]))

		if country == "" {
			return nil, fmt.Errorf("fila %d: país vacío", i+1)
		}
		if !entity.ValidShippingType(shipType) {
			return nil, fmt.Errorf("fila %d: tipo de envío desconocido %q", i+1, shipType)
		}
		if unit != entity.UnitKg && unit != entity.UnitCbm {
			return nil, fmt.Errorf("fila %d: unidad desconocida %q (kg o cbm)", i+1, unit)
		}
		price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(rec[3]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("fila %d: precio inválido %q", i+1, rec[3])
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("fila %d: precio negativo", i+1)
		}
		if len(currency) != 3 {
			return nil, fmt.Errorf("fila %d: divisa inválida %q", i+1, rec[4])
		}

		rows = append(rows, rateRow{
			country:  country,
			shipType: shipType,
			unit:     unit,
			price:    price,
			currency: currency,
		})
	}
	return rows, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
