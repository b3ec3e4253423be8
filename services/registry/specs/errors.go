package specs

import "errors"

// ErrUnknownMetric signals that a metric code is not present in the table
var ErrUnknownMetric = errors.New("unknown metric code")

// ErrUnknownMilestone signals a milestone tag outside the known set
var ErrUnknownMilestone = errors.New("unknown milestone")

// ErrUnknownOperator signals an unsupported comparison symbol
var ErrUnknownOperator = errors.New("unknown comparison operator")

// ErrNoSpecForMilestone signals that a metric defines no level at the requested milestone
var ErrNoSpecForMilestone = errors.New("no specification level at milestone")

// ErrFilterNotCovered signals that a level does not apply to the requested filter
var ErrFilterNotCovered = errors.New("filter not covered by specification level")

// ErrDuplicateMetric signals a metric code declared twice in the table document
var ErrDuplicateMetric = errors.New("duplicate metric code")
