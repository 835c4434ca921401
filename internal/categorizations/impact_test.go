package categorizations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHighWaterMark(t *testing.T) {
	cases := []struct {
		name  string
		types []InformationType
		want  OverallImpact
	}{
		{
			name: "no types is low",
			want: OverallImpact{ImpactLow, ImpactLow, ImpactLow, ImpactLow},
		},
		{
			name: "per objective maximum",
			types: []InformationType{
				{Name: "Personnel records", Confidentiality: ImpactModerate, Integrity: ImpactLow, Availability: ImpactLow},
				{Name: "Payroll", Confidentiality: ImpactLow, Integrity: ImpactModerate, Availability: ImpactLow},
			},
			want: OverallImpact{ImpactModerate, ImpactModerate, ImpactLow, ImpactModerate},
		},
		{
			name: "any high makes the system high",
			types: []InformationType{
				{Name: "Emergency response", Confidentiality: ImpactLow, Integrity: ImpactLow, Availability: ImpactHigh},
			},
			want: OverallImpact{ImpactLow, ImpactLow, ImpactHigh, ImpactHigh},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HighWaterMark(tc.types))
		})
	}
}

func TestParseImpactLevel(t *testing.T) {
	assert.Equal(t, ImpactModerate, ParseImpactLevel(" moderate "))
	assert.Equal(t, ImpactHigh, ParseImpactLevel("HIGH"))
	assert.Equal(t, ImpactLevel("Severe"), ParseImpactLevel("Severe"))
}
