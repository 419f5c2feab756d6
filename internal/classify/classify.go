package classify

import (
	"github.com/verte-zerg/nutristat/internal/age"
	"github.com/verte-zerg/nutristat/internal/model"
	"github.com/verte-zerg/nutristat/internal/reference"
)

// Classify runs all four indicators for one input. It never fails; anything
// that cannot be classified comes back as the empty tag.
func Classify(in model.Input, tables *reference.Tables) model.NutritionalStatus {
	ageMonths := age.Parse(in.Age).Months
	gender := in.Gender.Normalize()

	status := model.NutritionalStatus{
		MUACStatus: MUACStatus(in.MUAC, ageMonths),
	}
	if in.MUAC != nil && model.Finite(*in.MUAC) {
		status.MUAC = model.Float(*in.MUAC)
	}
	if tables == nil {
		return status
	}
	status.WFA = WeightForAge(in.Weight, ageMonths, tables.WFA(gender))
	status.LHFA = HeightForAge(in.Height, ageMonths, tables.LHFA(gender))
	status.WFH = WeightForHeight(in.Weight, in.Height, tables.WFH(gender))
	return status
}
