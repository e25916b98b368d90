package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MarcGrol/onlineshop/lib/mydb"
)

type SQLRepository struct {
	db *mydb.DB
}

func NewSQLRepository(db *mydb.DB) *SQLRepository {
	return &SQLRepository{
		db: db,
	}
}

func (r *SQLRepository) CreateAtomic(c context.Context, order Order) (Order, error) {
	if len(order.Lines) == 0 {
		return Order{}, fmt.Errorf("order %s has no lines", order.UID)
	}

	err := r.db.RunInTransaction(c, func(c context.Context) error {
		_, err := r.db.Conn(c).ExecContext(c,
			`INSERT INTO orders (uid, session_uid, customer_name, customer_phone, customer_email, delivery_method,
				address_city, address_street, address_house, address_apartment, address_comment,
				shipping_cost, subtotal, total, eta_hours, preferred_time, scheduled_at, delivery_note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
			order.UID, order.SessionUID, order.Customer.Name, order.Customer.Phone, order.Customer.Email, order.DeliveryMethod,
			order.Address.City, order.Address.Street, order.Address.House, order.Address.Apartment, order.Address.Comment,
			order.ShippingCost.StringFixed(2), order.Subtotal.StringFixed(2), order.Total.StringFixed(2),
			order.ETAHours, order.PreferredTime, mydb.FormatTime(order.ScheduledAt), order.DeliveryNote,
			mydb.FormatTime(order.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", order.UID, err)
		}

		for position, line := range order.Lines {
			_, err := r.db.Conn(c).ExecContext(c,
				`INSERT INTO order_lines (order_uid, position, product_id, product_name, quantity, unit_price, line_total)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				order.UID, position, line.ProductID, line.ProductName, line.Quantity,
				line.UnitPrice.StringFixed(2), line.LineTotal.StringFixed(2))
			if mydb.IsForeignKeyViolation(err) {
				return fmt.Errorf("failed to insert line for product %d: %w", line.ProductID, ErrUnknownProduct)
			}
			if err != nil {
				return fmt.Errorf("failed to insert line for product %d: %w", line.ProductID, err)
			}
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

const selectOrders = `SELECT uid, session_uid, customer_name, customer_phone, customer_email, delivery_method,
	address_city, address_street, address_house, address_apartment, address_comment,
	shipping_cost, subtotal, total, eta_hours, preferred_time, scheduled_at, delivery_note, created_at
	FROM orders`

const selectLines = `SELECT product_id, product_name, quantity, unit_price, line_total
	FROM order_lines WHERE order_uid = $1 ORDER BY position`

func (r *SQLRepository) Get(c context.Context, orderUID string) (Order, bool, error) {
	row := r.db.Conn(c).QueryRowContext(c, selectOrders+` WHERE uid = $1`, orderUID)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, fmt.Errorf("failed to get order %s: %w", orderUID, err)
	}

	lines, err := r.queryLines(c, orderUID)
	if err != nil {
		return Order{}, false, err
	}
	order.Lines = lines

	return order, true, nil
}

func (r *SQLRepository) queryLines(c context.Context, orderUID string) ([]OrderLine, error) {
	rows, err := r.db.Conn(c).QueryContext(c, selectLines, orderUID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	lines := []OrderLine{}
	for rows.Next() {
		line := OrderLine{}
		err := rows.Scan(&line.ProductID, &line.ProductName, &line.Quantity, &line.UnitPrice, &line.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order lines: %w", err)
	}

	return lines, nil
}

func scanOrder(row *sql.Row) (Order, error) {
	o := Order{}
	var scheduledAt, createdAt string
	err := row.Scan(&o.UID, &o.SessionUID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Email, &o.DeliveryMethod,
		&o.Address.City, &o.Address.Street, &o.Address.House, &o.Address.Apartment, &o.Address.Comment,
		&o.ShippingCost, &o.Subtotal, &o.Total, &o.ETAHours, &o.PreferredTime, &scheduledAt, &o.DeliveryNote, &createdAt)
	if err != nil {
		return Order{}, err
	}

	o.ScheduledAt, err = mydb.ParseTime(scheduledAt)
	if err != nil {
		return Order{}, err
	}
	o.CreatedAt, err = mydb.ParseTime(createdAt)
	if err != nil {
		return Order{}, err
	}

	return o, nil
}
