package in

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error)
	Panel(ctx context.Context, id string, input dto.DashboardInput) (dto.PanelOutput, error)
}
