package usage

import (
	"fmt"
	"time"

	"github.com/p-reiter/usagewatch/internal/models"
)

// ComputeWindow derives the half-open query range for one poll cycle:
// "look back lookbackHours from now". It is a pure function of its inputs
// and is re-evaluated every cycle so the window slides forward in real time.
func ComputeWindow(lookbackHours int, now time.Time) (models.Window, error) {
	if lookbackHours < 1 {
		return models.Window{}, fmt.Errorf("%w: lookback hours must be at least 1, got %d",
			ErrInvalidArgument, lookbackHours)
	}

	end := now.Unix()
	return models.Window{
		Start: end - int64(lookbackHours)*3600,
		End:   end,
	}, nil
}
