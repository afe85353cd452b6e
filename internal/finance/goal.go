package finance

// GoalEpsilonCents is the tolerance below which the quarter sum is
// considered to match the annual target (0.01 currency units).
const GoalEpsilonCents = 1

// GoalReconciliation is the derived comparison between a yearly target and
// its quarterly breakdown.
type GoalReconciliation struct {
	QuarterSumCents int64
	DifferenceCents int64 // annual - quarter sum, signed
	Balanced        bool
}

// ReconcileGoal sums the optional quarterly targets (nil quarter = 0) and
// compares them against the annual target. The result is informational,
// never a blocking validation.
func ReconcileGoal(annualCents int64, quarters [4]*int64) GoalReconciliation {
	var sum int64
	for _, q := range quarters {
		if q != nil {
			sum += *q
		}
	}
	diff := annualCents - sum
	abs := diff
	if abs < 0 {
		abs = -abs
	}
	return GoalReconciliation{
		QuarterSumCents: sum,
		DifferenceCents: diff,
		Balanced:        abs <= GoalEpsilonCents,
	}
}
