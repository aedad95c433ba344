package components

import (
	"courtbook/internal/infra/db"
	"courtbook/internal/infra/readstore"
	"courtbook/internal/infra/uow"
	"courtbook/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork spans the write-side repositories; they are built per-transaction
		uow.NewPostgresUoW,
		// Schedule
		fx.Annotate(
			readstore.NewScheduleReadStore,
			fx.As(new(queries.ScheduleReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
