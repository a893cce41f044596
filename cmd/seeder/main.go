package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-ledger/internal/adapters/db"
	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/pkg/auth"
	"github.com/ammerola/stock-ledger/internal/pkg/config"
	"github.com/ammerola/stock-ledger/internal/pkg/logger"
)

// Catalog workbook sheet names
const (
	SheetSuppliers  = "suppliers"
	SheetCategories = "categories"
	SheetProducts   = "products"
)

// Catalog is the reference data read from a seed workbook
type Catalog struct {
	Suppliers  []domain.Supplier
	Categories []domain.Category
	Products   []ProductRow
}

// ProductRow is a product plus the names it references
type ProductRow struct {
	Product  domain.Product
	Supplier string
	Category string
	Row      int
}

// LoadCatalog reads the suppliers, categories and products sheets. Missing
// sheets are treated as empty.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}

	catalog := &Catalog{}

	if sheet, ok := file.Sheet[SheetSuppliers]; ok {
		err := eachDataRow(sheet, func(_ int, get func(int) string) error {
			name := get(0)
			if name == "" {
				return nil
			}
			status := domain.SupplierStatus(strings.ToUpper(get(2)))
			if status == "" {
				status = domain.SupplierStatusActive
			}
			catalog.Suppliers = append(catalog.Suppliers, domain.Supplier{
				Name:        name,
				ContactInfo: get(1),
				Status:      status,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if sheet, ok := file.Sheet[SheetCategories]; ok {
		err := eachDataRow(sheet, func(_ int, get func(int) string) error {
			name := get(0)
			if name == "" {
				return nil
			}
			catalog.Categories = append(catalog.Categories, domain.Category{
				Name:        name,
				Description: get(1),
				Status:      domain.CategoryStatusActive,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sheet, ok := file.Sheet[SheetProducts]
	if !ok {
		return catalog, nil
	}

	// code | name | description | price | stock | status | supplier | category
	err = eachDataRow(sheet, func(row int, get func(int) string) error {
		code := get(0)
		if code == "" {
			return nil
		}

		price, err := decimal.NewFromString(orDefault(get(3), "0"))
		if err != nil {
			return fmt.Errorf("row %d: invalid price %q", row, get(3))
		}
		stock, err := strconv.Atoi(orDefault(get(4), "0"))
		if err != nil {
			return fmt.Errorf("row %d: invalid stock %q", row, get(4))
		}
		status := domain.ProductStatusActive
		if raw := get(5); raw != "" {
			if status, err = domain.ParseProductStatus(raw); err != nil {
				return fmt.Errorf("row %d: %w", row, err)
			}
		}

		catalog.Products = append(catalog.Products, ProductRow{
			Product: domain.Product{
				Code:         code,
				Name:         get(1),
				Description:  get(2),
				Price:        price,
				CurrentStock: stock,
				Status:       status,
			},
			Supplier: get(6),
			Category: get(7),
			Row:      row,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return catalog, nil
}

func eachDataRow(sheet *xlsx.Sheet, fn func(row int, get func(int) string) error) error {
	rowIdx := 0
	err := sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		// Skip header
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if s, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(c.String())
		}
		return fn(rowIdx, get)
	})
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheet.Name, err)
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// SeedResult counts what a seed run wrote
type SeedResult struct {
	Suppliers  int
	Categories int
	Products   int
	Failed     []string
}

// Seed writes the catalog in a single transaction. Products whose supplier
// is unknown are skipped and reported.
func Seed(ctx context.Context, database *db.Database, catalog *Catalog, logger *slog.Logger) (*SeedResult, error) {
	result := &SeedResult{}

	err := database.Transaction(ctx, func(tx pgx.Tx) error {
		repo := db.NewCatalogRepository(tx, logger)

		suppliers := make(map[string]int64, len(catalog.Suppliers))
		for i := range catalog.Suppliers {
			s := catalog.Suppliers[i]
			if err := repo.SaveSupplier(ctx, &s); err != nil {
				return err
			}
			suppliers[strings.ToLower(s.Name)] = s.ID
			result.Suppliers++
		}

		categories := make(map[string]int64, len(catalog.Categories))
		for i := range catalog.Categories {
			c := catalog.Categories[i]
			if err := repo.SaveCategory(ctx, &c); err != nil {
				return err
			}
			categories[strings.ToLower(c.Name)] = c.ID
			result.Categories++
		}

		for _, row := range catalog.Products {
			p := row.Product
			supplierID, ok := suppliers[strings.ToLower(row.Supplier)]
			if !ok {
				result.Failed = append(result.Failed, fmt.Sprintf("row %d (%s): unknown supplier %q", row.Row, p.Code, row.Supplier))
				continue
			}
			p.SupplierID = supplierID
			if id, ok := categories[strings.ToLower(row.Category)]; ok {
				p.CategoryID = &id
			}

			if err := repo.SaveProduct(ctx, &p); err != nil {
				return fmt.Errorf("row %d (%s): %w", row.Row, p.Code, err)
			}
			fmt.Printf("PROGRESS: product %s -> id %d (%s, stock %d)\n", p.Code, p.ID, p.Status, p.CurrentStock)
			result.Products++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func main() {
	var (
		catalogFile = flag.String("catalog", "./catalog.xlsx", "Excel workbook with suppliers, categories and products sheets")
		logLevel    = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun      = flag.Bool("dry-run", false, "Preview changes without modifying database")
		tokenFor    = flag.String("token-for", "", "Print an API token for this user id and exit")
		tokenRole   = flag.String("token-role", "clerk", "Role claim for -token-for")
	)
	flag.Parse()

	slogger := logger.SetupLogger(*logLevel, "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *tokenFor != "" {
		token, err := auth.Issue(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, *tokenFor, *tokenRole, cfg.Security.JWTExpiration)
		if err != nil {
			slogger.Error("Failed to issue token", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Println(token)
		return
	}

	catalog, err := LoadCatalog(*catalogFile)
	if err != nil {
		slogger.Error("Failed to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger.Info("Loaded catalog",
		slog.Int("suppliers", len(catalog.Suppliers)),
		slog.Int("categories", len(catalog.Categories)),
		slog.Int("products", len(catalog.Products)))

	if *dryRun {
		for _, row := range catalog.Products {
			fmt.Printf("PREVIEW: %s %q supplier=%s stock=%d status=%s\n",
				row.Product.Code, row.Product.Name, row.Supplier, row.Product.CurrentStock, row.Product.Status)
		}
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:              cfg.Database.Host,
		Port:              cfg.Database.Port,
		User:              cfg.Database.User,
		Password:          cfg.Database.Password,
		Database:          cfg.Database.Name,
		SSLMode:           cfg.Database.SSLMode,
		MaxConnections:    2,
		MinConnections:    1,
		MaxConnLifetime:   cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Database.HealthCheckPeriod,
		ConnectTimeout:    cfg.Database.ConnectTimeout,
	}, slogger)
	if err != nil {
		slogger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	result, err := Seed(ctx, database, catalog, slogger)
	if err != nil {
		slogger.Error("Seed failed, nothing was written", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Suppliers:  %d\n", result.Suppliers)
	fmt.Printf("Categories: %d\n", result.Categories)
	fmt.Printf("Products:   %d\n", result.Products)
	if len(result.Failed) > 0 {
		fmt.Printf("\nSkipped (%d):\n", len(result.Failed))
		for _, f := range result.Failed {
			fmt.Printf("  - %s\n", f)
		}
	}

	slogger.Info("Seed operation completed",
		slog.Int("suppliers", result.Suppliers),
		slog.Int("categories", result.Categories),
		slog.Int("products", result.Products),
		slog.Int("skipped", len(result.Failed)))
}
