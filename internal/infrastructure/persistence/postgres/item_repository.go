package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yuzvak/stockdecay-service/internal/application/ports"
	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
	"github.com/yuzvak/stockdecay-service/internal/infrastructure/monitoring"
)

type ItemRepository struct {
	db   *sql.DB
	tx   *sql.Tx
	isTx bool
}

func NewItemRepository(conn *Connection) *ItemRepository {
	return &ItemRepository{
		db:   conn.GetDB(),
		isTx: false,
	}
}

func (r *ItemRepository) querier() monitoring.Querier {
	if r.isTx {
		return r.tx
	}
	return r.db
}

const itemColumns = `id, name, sell_in, quality, created_at, updated_at`

func (r *ItemRepository) CreateItem(ctx context.Context, item *inventory.Item) error {
	query := `
		INSERT INTO items (id, name, sell_in, quality, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := monitoring.InstrumentExec(ctx, r.querier(), "INSERT", "items", query,
		item.ID, item.Name, item.SellIn, item.Quality, string(item.Category), item.CreatedAt, item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: duplicate id %s", domainErrors.ErrInvalidItem, item.ID)
	}
	return err
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id string) (*inventory.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domainErrors.ErrItemNotFound
	}

	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`

	row := monitoring.InstrumentQueryRow(ctx, r.querier(), "SELECT", "items", query, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *ItemRepository) ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		ORDER BY created_at, id
		LIMIT $1 OFFSET $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.querier(), "SELECT", "items", query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListAllItems returns the whole inventory in insertion order. Inside a
// transaction the rows stay locked until commit.
func (r *ItemRepository) ListAllItems(ctx context.Context) ([]*inventory.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY created_at, id`
	if r.isTx {
		query += ` FOR UPDATE`
	}

	rows, err := monitoring.InstrumentQuery(ctx, r.querier(), "SELECT", "items", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (r *ItemRepository) UpdateItems(ctx context.Context, items []*inventory.Item) (err error) {
	if len(items) == 0 {
		return nil
	}

	tx := r.tx
	if !r.isTx {
		tx, err = r.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				tx.Rollback()
				return
			}
			err = tx.Commit()
		}()
	}

	end := monitoring.TimeDBQuery("UPDATE", "items")
	defer end()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE items
		SET sell_in = $2, quality = $3, updated_at = $4
		WHERE id = $1
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err = stmt.ExecContext(ctx, item.ID, item.SellIn, item.Quality, item.UpdatedAt); err != nil {
			return fmt.Errorf("update item %s: %w", item.ID, err)
		}
	}

	return nil
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domainErrors.ErrItemNotFound
	}

	result, err := monitoring.InstrumentExec(ctx, r.querier(), "DELETE", "items", `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainErrors.ErrItemNotFound
	}

	return nil
}

func (r *ItemRepository) GetSimulationState(ctx context.Context) (*simulation.State, error) {
	query := `
		SELECT day, advanced_at
		FROM simulation_days
		ORDER BY day DESC
		LIMIT 1
	`

	var day int
	var advancedAt time.Time

	row := monitoring.InstrumentQueryRow(ctx, r.querier(), "SELECT", "simulation_days", query)
	if err := row.Scan(&day, &advancedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &simulation.State{}, nil
		}
		return nil, err
	}

	return &simulation.State{
		CurrentDay:     day,
		LastAdvancedAt: &advancedAt,
	}, nil
}

func (r *ItemRepository) RecordDay(ctx context.Context, record *simulation.DayRecord) error {
	query := `
		INSERT INTO simulation_days (day, advanced_at, items_count, expired_count, trigger)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := monitoring.InstrumentExec(ctx, r.querier(), "INSERT", "simulation_days", query,
		record.Day, record.AdvancedAt, record.ItemsCount, record.ExpiredCount, string(record.Trigger),
	)
	if isUniqueViolation(err) {
		// another writer got past an expired lock and recorded this day first
		return fmt.Errorf("%w: day %d already recorded", domainErrors.ErrAdvanceInProgress, record.Day)
	}
	return err
}

func (r *ItemRepository) BeginTx(ctx context.Context) (ports.ItemRepository, error) {
	if r.isTx {
		return nil, errors.New("transaction already started")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &ItemRepository{
		db:   r.db,
		tx:   tx,
		isTx: true,
	}, nil
}

func (r *ItemRepository) CommitTx(ctx context.Context) error {
	if !r.isTx {
		return errors.New("no transaction to commit")
	}
	return r.tx.Commit()
}

func (r *ItemRepository) RollbackTx(ctx context.Context) error {
	if !r.isTx {
		return errors.New("no transaction to rollback")
	}
	return r.tx.Rollback()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*inventory.Item, error) {
	var (
		id, name             string
		sellIn, quality      int
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(&id, &name, &sellIn, &quality, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return inventory.RestoreItem(id, name, sellIn, quality, createdAt, updatedAt)
}

func scanItems(rows *sql.Rows) ([]*inventory.Item, error) {
	items := make([]*inventory.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
