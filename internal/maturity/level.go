package maturity

// Level is one of the four ordered maturity labels of the Zero Trust
// Maturity Model. The zero value "" means "not assessed".
type Level string

const (
	Traditional Level = "traditional"
	Initial     Level = "initial"
	Advanced    Level = "advanced"
	Optimal     Level = "optimal"
)

// Levels lists all levels in declaration order, lowest maturity first.
// Iteration order matters: modal aggregation ties resolve to the first
// level in this order to reach the running maximum count.
var Levels = []Level{Traditional, Initial, Advanced, Optimal}

// Valid reports whether l is one of the four defined levels.
// The empty "not assessed" value is not valid.
func (l Level) Valid() bool {
	switch l {
	case Traditional, Initial, Advanced, Optimal:
		return true
	}
	return false
}

// Assessed reports whether l carries an actual assessment.
func (l Level) Assessed() bool {
	return l != ""
}

// Score maps a level to its numeric value 1-4, used only for the
// headline average. Returns 0 for an unassessed or unknown level.
func (l Level) Score() int {
	switch l {
	case Traditional:
		return 1
	case Initial:
		return 2
	case Advanced:
		return 3
	case Optimal:
		return 4
	}
	return 0
}

// Label returns the display name for a level ("Traditional", ...).
func (l Level) Label() string {
	switch l {
	case Traditional:
		return "Traditional"
	case Initial:
		return "Initial"
	case Advanced:
		return "Advanced"
	case Optimal:
		return "Optimal"
	}
	return "Not Assessed"
}
