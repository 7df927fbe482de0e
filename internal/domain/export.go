package domain

import "time"

// ExportRow is one line of the flat catalog export: one row per itinerary
// activity, with the trek and day fields repeated on every row. A day with no
// activities yields one row with empty activity fields, and a trek with no
// itinerary yields one row with empty day fields.
type ExportRow struct {
	TrekID              string
	Title               string
	Location            string
	Difficulty          Difficulty
	StartDate           time.Time
	EndDate             time.Time
	Price               float64
	MaxParticipants     int
	CurrentParticipants int
	Inclusions          []string
	Exclusions          []string

	// Zero when the trek has no itinerary.
	Day      int
	DayTitle string

	ActivityTime        string
	ActivityDescription string
}

// ExportRows flattens treks in the given order.
func ExportRows(treks []Trek) []ExportRow {
	var rows []ExportRow
	for _, t := range treks {
		base := ExportRow{
			TrekID:              t.ID.String(),
			Title:               t.Title,
			Location:            t.Location,
			Difficulty:          t.Difficulty,
			StartDate:           t.StartDate,
			EndDate:             t.EndDate,
			Price:               t.Price,
			MaxParticipants:     t.MaxParticipants,
			CurrentParticipants: t.CurrentParticipants,
			Inclusions:          t.Inclusions,
			Exclusions:          t.Exclusions,
		}
		if len(t.Itinerary) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, d := range t.Itinerary {
			day := base
			day.Day = d.Day
			day.DayTitle = d.Title
			if len(d.Activities) == 0 {
				rows = append(rows, day)
				continue
			}
			for _, a := range d.Activities {
				row := day
				row.ActivityTime = a.Time
				row.ActivityDescription = a.Description
				rows = append(rows, row)
			}
		}
	}
	return rows
}
