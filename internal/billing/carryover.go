package billing

// Carryover is the prior period's unsettled balance applied to the next
// invoice: either debt still owed or credit from an overpayment.
type Carryover struct {
	Debt   int64
	Credit int64
}

// CarryoverFrom derives the carryover from the previous period's
// invoice. A nil invoice (first month of a tenancy, or no prior bill)
// carries nothing forward. Lookup of the previous invoice is scoped to
// the tenancy, so a new tenant never inherits a departed tenant's debt.
func CarryoverFrom(prev *Invoice) Carryover {
	if prev == nil {
		return Carryover{}
	}

	return Carryover{
		Debt:   prev.RemainingDebt(),
		Credit: prev.RemainingCredit(),
	}
}
