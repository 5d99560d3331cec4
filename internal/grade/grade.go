// Package grade converts a strategy's ROI into a discrete deal grade.
package grade

import (
	"github.com/TheTreasury832/Wholesale2Flip-sub001/internal/core"
)

// FromROI applies the grading rubric to an ROI in percentage points.
// Boundaries resolve upward: exactly 20 is A+, exactly 0 is D. The caller
// is responsible for clamping ROI to a finite value first.
func FromROI(roi float64) core.Grade {
	switch {
	case roi >= 20:
		return core.GradeAPlus
	case roi >= 15:
		return core.GradeA
	case roi >= 10:
		return core.GradeB
	case roi >= 5:
		return core.GradeC
	case roi >= 0:
		return core.GradeD
	default:
		return core.GradeF
	}
}
