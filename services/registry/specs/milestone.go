package specs

import "fmt"

// Milestone is a program milestone tag at which threshold strictness changes
type Milestone string

// The complete milestone set, in chronological order
const (
	FY17 Milestone = "FY17"
	FY18 Milestone = "FY18"
	FY19 Milestone = "FY19"
	FY20 Milestone = "FY20"
	ORR  Milestone = "ORR"
)

var milestoneOrder = map[Milestone]int{
	FY17: 0,
	FY18: 1,
	FY19: 2,
	FY20: 3,
	ORR:  4,
}

// Milestones returns all known milestones in chronological order
func Milestones() []Milestone {
	return []Milestone{FY17, FY18, FY19, FY20, ORR}
}

// ParseMilestone converts a string tag into a Milestone
func ParseMilestone(tag string) (Milestone, error) {
	m := Milestone(tag)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownMilestone, tag)
	}

	return m, nil
}

// IsValid returns true if the milestone belongs to the known set
func (m Milestone) IsValid() bool {
	_, found := milestoneOrder[m]
	return found
}

// Index returns the chronological position of the milestone, -1 for unknown tags
func (m Milestone) Index() int {
	idx, found := milestoneOrder[m]
	if !found {
		return -1
	}

	return idx
}

// Before returns true if the milestone chronologically precedes the provided one
func (m Milestone) Before(other Milestone) bool {
	return m.Index() < other.Index()
}
