package articleservice

// flagNewYears marks every archive record whose year differs from the record
// before it, in newest-first order. The previous-year tracker starts at a
// sentinel so the first record is always flagged.
func flagNewYears(archives []Archive) []Archive {
	prevYear := 0
	for i := range archives {
		if year := archives[i].Month.Year(); year != prevYear {
			archives[i].NewYear = true
			prevYear = year
		}
	}
	return archives
}
