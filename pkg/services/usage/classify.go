package usage

import (
	"math"

	"github.com/costguard/costguard/pkg/models/domain"
)

// Classify maps usage against the contracted quantity and the optional
// alert threshold. The absolute threshold is checked before the
// utilization percentage at each severity level.
func Classify(usage, committed float64, threshold *float64) domain.Classification {
	utilization := 0
	if committed != 0 {
		// Vendor corrections can report negative usage; the percentage
		// stays within 0-100 regardless.
		utilization = int(math.Min(100, math.Max(0, math.Round(usage/committed*100))))
	}

	var status domain.Status
	switch {
	case threshold != nil && usage >= *threshold:
		status = domain.StatusCritical
	case utilization >= 95:
		status = domain.StatusCritical
	case threshold != nil && usage >= *threshold*0.8:
		status = domain.StatusWatch
	case utilization >= 70:
		status = domain.StatusWatch
	default:
		status = domain.StatusOK
	}

	return domain.Classification{Status: status, Utilization: utilization}
}
