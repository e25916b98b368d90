package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MarcGrol/onlineshop/lib/mydb"
)

type SQLCatalog struct {
	db *mydb.DB
}

func NewSQLCatalog(db *mydb.DB) *SQLCatalog {
	return &SQLCatalog{
		db: db,
	}
}

func (s *SQLCatalog) Get(c context.Context, productID int64) (Product, bool, error) {
	row := s.db.Conn(c).QueryRowContext(c,
		`SELECT id, name, description, price, stock FROM products WHERE id = $1`, productID)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, fmt.Errorf("failed to get product %d: %w", productID, err)
	}

	return p, true, nil
}

// ExistsAll reports whether every id resolves to a product. Duplicates are allowed.
func (s *SQLCatalog) ExistsAll(c context.Context, productIDs []int64) (bool, error) {
	unique := map[int64]bool{}
	args := []any{}
	placeholders := []string{}
	for _, id := range productIDs {
		if unique[id] {
			continue
		}
		unique[id] = true
		args = append(args, id)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	if len(args) == 0 {
		return true, nil
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE id IN (%s)`, strings.Join(placeholders, ", "))
	var count int
	err := s.db.Conn(c).QueryRowContext(c, query, args...).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to count products: %w", err)
	}

	return count == len(args), nil
}

func (s *SQLCatalog) List(c context.Context) ([]Product, error) {
	rows, err := s.db.Conn(c).QueryContext(c,
		`SELECT id, name, description, price, stock FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return products, nil
}

func (s *SQLCatalog) Put(c context.Context, product Product) error {
	_, err := s.db.Conn(c).ExecContext(c,
		`INSERT INTO products (id, name, description, price, stock) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			price = excluded.price,
			stock = excluded.stock`,
		product.ID, product.Name, product.Description, product.Price.StringFixed(2), product.Stock)
	if err != nil {
		return fmt.Errorf("failed to put product %d: %w", product.ID, err)
	}
	return nil
}

func (s *SQLCatalog) Delete(c context.Context, productID int64) error {
	result, err := s.db.Conn(c).ExecContext(c, `DELETE FROM products WHERE id = $1`, productID)
	if mydb.IsForeignKeyViolation(err) {
		return fmt.Errorf("failed to delete product %d: %w", productID, ErrProductInUse)
	}
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", productID, err)
	}
	if affected == 0 {
		return fmt.Errorf("failed to delete product %d: %w", productID, ErrProductNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner) (Product, error) {
	p := Product{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
