package out

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/chart/domain"
)

type Renderer interface {
	Render(ctx context.Context, fig domain.Figure) ([]byte, error)
}
