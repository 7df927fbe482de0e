package domain

// Summary holds the admin dashboard totals over a set of treks.
type Summary struct {
	TotalTreks        int
	TotalParticipants int
	// TotalRevenue is the sum of price × current participants.
	TotalRevenue float64
}

// Summarize computes dashboard totals for treks.
func Summarize(treks []Trek) Summary {
	s := Summary{TotalTreks: len(treks)}
	for _, t := range treks {
		s.TotalParticipants += t.CurrentParticipants
		s.TotalRevenue += t.Price * float64(t.CurrentParticipants)
	}
	return s
}
