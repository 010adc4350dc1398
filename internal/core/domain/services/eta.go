package services

import "fieldops/internal/core/domain/model/task"

// EstimateMinutes returns the rough on-site handling time for a task kind,
// added on top of travel time when quoting an arrival window.
func EstimateMinutes(kind task.Kind) int {
	switch kind {
	case task.KindFailure:
		return 30
	case task.KindRefill:
		return 20
	case task.KindChange:
		return 15
	case task.KindPrize:
		return 10
	case task.KindExpense:
		return 5
	default:
		return 15
	}
}
