package database

// SortCondition is the direction of a sort
type SortCondition string

const (
	SortAscending  SortCondition = "asc"
	SortDescending SortCondition = "desc"
)

// EvaluateOrder applies the sort direction to an ascending comparison result
// (-1, 0, 1). Descending reverses the order.
func (c SortCondition) EvaluateOrder(order int) int {
	if c == SortDescending {
		return -order
	}
	return order
}
