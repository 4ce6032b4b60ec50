package usage

import (
	"testing"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func threshold(v float64) *float64 { return &v }

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		usage     float64
		committed float64
		threshold *float64
		want      domain.Classification
	}{
		{
			name:  "threshold breach is critical before utilization",
			usage: 96, committed: 100, threshold: threshold(90),
			want: domain.Classification{Status: domain.StatusCritical, Utilization: 96},
		},
		{
			name:  "utilization 95 critical without threshold",
			usage: 95, committed: 100,
			want: domain.Classification{Status: domain.StatusCritical, Utilization: 95},
		},
		{
			name:  "80 percent of threshold is watch",
			usage: 80, committed: 200, threshold: threshold(100),
			want: domain.Classification{Status: domain.StatusWatch, Utilization: 40},
		},
		{
			name:  "utilization 70 is watch",
			usage: 70, committed: 100,
			want: domain.Classification{Status: domain.StatusWatch, Utilization: 70},
		},
		{
			name:  "under every limit is ok",
			usage: 10, committed: 100, threshold: threshold(500),
			want: domain.Classification{Status: domain.StatusOK, Utilization: 10},
		},
		{
			name:  "zero commitment yields zero utilization",
			usage: 50, committed: 0,
			want: domain.Classification{Status: domain.StatusOK, Utilization: 0},
		},
		{
			name:  "utilization capped at 100",
			usage: 300, committed: 100,
			want: domain.Classification{Status: domain.StatusCritical, Utilization: 100},
		},
		{
			name:  "negative usage from a vendor credit floors at zero",
			usage: -50, committed: 100,
			want: domain.Classification{Status: domain.StatusOK, Utilization: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.usage, tt.committed, tt.threshold))
		})
	}
}
