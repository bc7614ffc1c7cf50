package in

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
	chartin "github.com/Xrenya/activity-tracker/internal/modules/chart/port/in"
)

type DashboardHandler struct {
	usecase chartin.Usecase
}

func NewDashboardHandler(usecase chartin.Usecase) DashboardHandler {
	return DashboardHandler{usecase: usecase}
}

func (h DashboardHandler) Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error) {
	return h.usecase.Dashboard(ctx, input)
}

func (h DashboardHandler) Panel(ctx context.Context, id string, input dto.DashboardInput) (dto.PanelOutput, error) {
	return h.usecase.Panel(ctx, id, input)
}
