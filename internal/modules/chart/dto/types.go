package dto

import activitydto "github.com/Xrenya/activity-tracker/internal/modules/activity/dto"

type DashboardInput struct {
	Filter activitydto.FilterInput
}

type LegendEntry struct {
	Series string
	Color  string
}

type PanelOutput struct {
	ID       string
	Title    string
	XLabel   string
	YLabel   string
	Legend   string
	Entries  []LegendEntry
	SVG      []byte
	Fallback bool
	Err      error
}

type DashboardOutput struct {
	Category string
	Panels   []PanelOutput
}
