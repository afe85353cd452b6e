package finance

import "testing"

func cents(v int64) *int64 { return &v }

func TestReconcileGoal(t *testing.T) {
	cases := []struct {
		name     string
		annual   int64
		quarters [4]*int64
		wantSum  int64
		wantDiff int64
		balanced bool
	}{
		{
			name:     "exact match",
			annual:   400000,
			quarters: [4]*int64{cents(100000), cents(100000), cents(100000), cents(100000)},
			wantSum:  400000,
			wantDiff: 0,
			balanced: true,
		},
		{
			name:     "missing quarters count as zero",
			annual:   400000,
			quarters: [4]*int64{cents(100000), nil, nil, cents(100000)},
			wantSum:  200000,
			wantDiff: 200000,
			balanced: false,
		},
		{
			name:     "quarters exceed annual, signed difference",
			annual:   100000,
			quarters: [4]*int64{cents(50000), cents(60000), nil, nil},
			wantSum:  110000,
			wantDiff: -10000,
			balanced: false,
		},
		{
			name:     "one cent off is balanced",
			annual:   100001,
			quarters: [4]*int64{cents(100000), nil, nil, nil},
			wantSum:  100000,
			wantDiff: 1,
			balanced: true,
		},
		{
			name:     "two cents off is not balanced",
			annual:   100002,
			quarters: [4]*int64{cents(100000), nil, nil, nil},
			wantSum:  100000,
			wantDiff: 2,
			balanced: false,
		},
		{
			name:     "no quarters at all",
			annual:   0,
			quarters: [4]*int64{},
			wantSum:  0,
			wantDiff: 0,
			balanced: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReconcileGoal(tc.annual, tc.quarters)
			if got.QuarterSumCents != tc.wantSum {
				t.Errorf("QuarterSumCents = %d, want %d", got.QuarterSumCents, tc.wantSum)
			}
			if got.DifferenceCents != tc.wantDiff {
				t.Errorf("DifferenceCents = %d, want %d", got.DifferenceCents, tc.wantDiff)
			}
			if got.Balanced != tc.balanced {
				t.Errorf("Balanced = %v, want %v", got.Balanced, tc.balanced)
			}
		})
	}
}
