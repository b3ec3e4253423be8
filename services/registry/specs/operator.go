package specs

import "fmt"

// Operator is the comparison applied between a measured value and a threshold.
// A measurement passes when `measured operator threshold` holds.
type Operator string

// Supported comparison operators. The shipped table only uses OperatorLE but the
// field is data-driven so the remaining orderings are accepted as well.
const (
	OperatorLE Operator = "<="
	OperatorLT Operator = "<"
	OperatorGE Operator = ">="
	OperatorGT Operator = ">"
)

// ParseOperator converts a comparison symbol into an Operator
func ParseOperator(symbol string) (Operator, error) {
	switch Operator(symbol) {
	case OperatorLE, OperatorLT, OperatorGE, OperatorGT:
		return Operator(symbol), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownOperator, symbol)
	}
}

// Compare applies the operator with the measured value on the left-hand side
func (o Operator) Compare(measured float64, threshold float64) bool {
	switch o {
	case OperatorLE:
		return measured <= threshold
	case OperatorLT:
		return measured < threshold
	case OperatorGE:
		return measured >= threshold
	case OperatorGT:
		return measured > threshold
	default:
		return false
	}
}
