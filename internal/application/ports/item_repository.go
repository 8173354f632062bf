package ports

import (
	"context"

	"github.com/yuzvak/stockdecay-service/internal/domain/inventory"
	"github.com/yuzvak/stockdecay-service/internal/domain/simulation"
)

type ItemRepository interface {
	CreateItem(ctx context.Context, item *inventory.Item) error
	GetItemByID(ctx context.Context, id string) (*inventory.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]*inventory.Item, error)
	ListAllItems(ctx context.Context) ([]*inventory.Item, error)
	UpdateItems(ctx context.Context, items []*inventory.Item) error
	DeleteItem(ctx context.Context, id string) error

	GetSimulationState(ctx context.Context) (*simulation.State, error)
	RecordDay(ctx context.Context, record *simulation.DayRecord) error

	BeginTx(ctx context.Context) (ItemRepository, error)
	CommitTx(ctx context.Context) error
	RollbackTx(ctx context.Context) error
}
