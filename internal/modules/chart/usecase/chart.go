package usecase

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/dto"
	chartin "github.com/Xrenya/activity-tracker/internal/modules/chart/port/in"
	"github.com/Xrenya/activity-tracker/internal/modules/chart/service"
)

type Interactor struct {
	svc *service.DashboardService
}

func NewInteractor(svc *service.DashboardService) chartin.Usecase {
	return &Interactor{svc: svc}
}

// Dashboard renders every panel on its own; a failing panel carries its
// error and does not stop the others.
func (i *Interactor) Dashboard(ctx context.Context, input dto.DashboardInput) (dto.DashboardOutput, error) {
	out := dto.DashboardOutput{Category: input.Filter.Category, Panels: make([]dto.PanelOutput, 0, len(service.PanelIDs))}
	for _, id := range service.PanelIDs {
		if err := ctx.Err(); err != nil {
			return dto.DashboardOutput{}, err
		}
		panel, err := i.Panel(ctx, id, input)
		if err != nil {
			panel.Err = err
		}
		if out.Category == "" && panel.Legend != "" {
			out.Category = panel.Legend
		}
		out.Panels = append(out.Panels, panel)
	}
	return out, nil
}

func (i *Interactor) Panel(ctx context.Context, id string, input dto.DashboardInput) (dto.PanelOutput, error) {
	panel := dto.PanelOutput{ID: id}
	fig, fallback, err := i.svc.Build(ctx, id, input.Filter)
	if err != nil {
		return panel, err
	}
	panel = describe(fig)
	panel.Fallback = fallback
	svg, err := i.svc.Render(ctx, fig)
	if err != nil {
		return panel, err
	}
	panel.SVG = svg
	return panel, nil
}

func describe(fig domain.Figure) dto.PanelOutput {
	colors := fig.Colors()
	entries := make([]dto.LegendEntry, 0, len(colors))
	for _, series := range fig.Series() {
		entries = append(entries, dto.LegendEntry{Series: series, Color: "#" + colors[series]})
	}
	return dto.PanelOutput{
		ID:      fig.ID,
		Title:   fig.Title,
		XLabel:  fig.XLabel,
		YLabel:  fig.YLabel,
		Legend:  fig.LegendTitle,
		Entries: entries,
	}
}
