package usage

import "github.com/kailas-cloud/labdex/internal/usecase/answer"

// BudgetReader provides read-only access to token budget state.
type BudgetReader interface {
	Snapshot() answer.Snapshot
}
