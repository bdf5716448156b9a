package usage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/p-reiter/usagewatch/internal/models"
)

// DetectSpikes compares the current cycle's totals against the previous
// successful cycle and reports per-minute rates that meet or exceed the
// configured thresholds. The first cycle has no baseline and never alerts.
// Negative deltas (the window sliding past old activity) produce negative
// rates and never fire.
func DetectSpikes(prev *models.Totals, cur models.Totals, elapsed time.Duration, tokenRateThreshold, requestRateThreshold float64) []models.SpikeAlert {
	if prev == nil {
		return nil
	}

	minutes := elapsed.Seconds() / 60
	if minutes < 1e-6 {
		minutes = 1e-6
	}

	var alerts []models.SpikeAlert

	tokenDelta := cur.TotalTokens() - prev.TotalTokens()
	tokenRate := float64(tokenDelta) / minutes
	if tokenRate >= tokenRateThreshold {
		alerts = append(alerts, models.SpikeAlert{
			Kind:       models.SpikeTokens,
			Delta:      tokenDelta,
			RatePerMin: tokenRate,
			Message: fmt.Sprintf("Token spike: %s tokens since last check (~%s/min).",
				commaInt(tokenDelta), commaInt(int64(tokenRate))),
		})
	}

	requestDelta := cur.Requests - prev.Requests
	requestRate := float64(requestDelta) / minutes
	if requestRate >= requestRateThreshold {
		alerts = append(alerts, models.SpikeAlert{
			Kind:       models.SpikeRequests,
			Delta:      requestDelta,
			RatePerMin: requestRate,
			Message: fmt.Sprintf("Request spike: %s requests since last check (~%s/min).",
				commaInt(requestDelta), commaInt(int64(requestRate))),
		})
	}

	return alerts
}

func commaInt(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
