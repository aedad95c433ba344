package components

import (
	"courtbook/internal/handler"
	"courtbook/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewScheduleHandler,
	),
	fx.Invoke(handler.NewRouter),
)
