package domain

// ReconciliationPlan is the income-record write set a project save must
// apply: records to create for UNPAID->PAID transitions and existing records
// to delete for PAID->UNPAID ones. Failures carries lookup problems hit while
// resolving removals; the affected slot is skipped, the rest still plan.
type ReconciliationPlan struct {
	Create   []Transaction
	Remove   []Transaction
	Failures []string
}

// IsEmpty reports whether the plan carries any writes.
func (p ReconciliationPlan) IsEmpty() bool {
	return len(p.Create) == 0 && len(p.Remove) == 0
}

// ReconciliationResult records the financial side effects of one project save:
// income records created for UNPAID->PAID transitions and removed for
// PAID->UNPAID transitions. Failures carries the per-milestone errors that
// were logged and skipped; one bad milestone never aborts the rest.
type ReconciliationResult struct {
	Created  []Transaction `json:"created"`
	Removed  []Transaction `json:"removed"`
	Failures []string      `json:"failures,omitempty"`
}

// HasEffects reports whether the save changed any payment state.
func (r ReconciliationResult) HasEffects() bool {
	return len(r.Created) > 0 || len(r.Removed) > 0
}
