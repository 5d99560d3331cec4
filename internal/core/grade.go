package core

import (
	"encoding/json"
	"fmt"
)

// Grade is a discrete deal grade. The zero value is F; grades are ordered
// F < D < C < B < A < A+ so they compare directly with <.
type Grade int

const (
	GradeF Grade = iota
	GradeD
	GradeC
	GradeB
	GradeA
	GradeAPlus
)

var gradeNames = [...]string{"F", "D", "C", "B", "A", "A+"}

func (g Grade) String() string {
	if g < GradeF || g > GradeAPlus {
		return "F"
	}
	return gradeNames[g]
}

// ParseGrade converts a letter grade back to its ordinal form.
func ParseGrade(s string) (Grade, error) {
	for i, name := range gradeNames {
		if name == s {
			return Grade(i), nil
		}
	}
	return GradeF, fmt.Errorf("unknown grade %q", s)
}

// MarshalJSON encodes the grade as its letter form.
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts a letter grade.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}
