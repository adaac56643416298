package types

// CrimeRow is one normalized district total.
type CrimeRow struct {
	District   string  `json:"District"`
	TotalCrime float64 `json:"Total_Crime"`
}

// CrimeTable holds at most one row per district, in file order.
type CrimeTable struct {
	Rows []CrimeRow `json:"rows"`
}

func (t CrimeTable) Empty() bool { return len(t.Rows) == 0 }

// Lookup returns the total for district and whether it is present.
func (t CrimeTable) Lookup(district string) (float64, bool) {
	for _, r := range t.Rows {
		if r.District == district {
			return r.TotalCrime, true
		}
	}
	return 0, false
}

// Bounds returns the smallest and largest totals. Both are 0 for an empty table.
func (t CrimeTable) Bounds() (min, max float64) {
	for i, r := range t.Rows {
		if i == 0 || r.TotalCrime < min {
			min = r.TotalCrime
		}
		if i == 0 || r.TotalCrime > max {
			max = r.TotalCrime
		}
	}
	return min, max
}
