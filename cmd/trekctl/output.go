package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
)

func printIdentity(w io.Writer, st auth.State) {
	if st.Session == nil {
		fmt.Fprintln(w, "Not signed in.")
		return
	}
	role := "traveller"
	if st.IsAdmin {
		role = "admin"
	}
	fmt.Fprintf(w, "Signed in as %s (%s)\n", st.Session.Email, role)
}

func printTrekTable(w io.Writer, treks []domain.Trek) {
	if len(treks) == 0 {
		fmt.Fprintln(w, "No treks available.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tLOCATION\tDIFFICULTY\tDATES\tPRICE\tSPOTS")
	for _, t := range treks {
		spots := fmt.Sprintf("%d left", t.SpotsRemaining())
		if t.FullyBooked() {
			spots = "full"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Location, t.Difficulty, dateRange(t), money(t.Price), spots)
	}
	tw.Flush()
}

func printTrek(w io.Writer, t domain.Trek) {
	fmt.Fprintf(w, "%s\n%s\n", t.Title, strings.Repeat("=", len(t.Title)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", t.ID)
	fmt.Fprintf(tw, "Location\t%s\n", t.Location)
	fmt.Fprintf(tw, "Dates\t%s (%s)\n", dateRange(t), t.Duration)
	fmt.Fprintf(tw, "Difficulty\t%s\n", t.Difficulty)
	fmt.Fprintf(tw, "Price\t%s\n", money(t.Price))
	fmt.Fprintf(tw, "Booked\t%d/%d (%d%%), %d spots left\n",
		t.CurrentParticipants, t.MaxParticipants, t.BookingProgress(), t.SpotsRemaining())
	if t.ImageURL != "" {
		fmt.Fprintf(tw, "Image\t%s\n", t.ImageURL)
	}
	tw.Flush()

	if t.Description != "" {
		fmt.Fprintf(w, "\n%s\n", t.Description)
	}
	printList(w, "Included", t.Inclusions)
	printList(w, "Not included", t.Exclusions)

	if len(t.Itinerary) > 0 {
		fmt.Fprintln(w, "\nItinerary:")
		for i, d := range t.Itinerary {
			fmt.Fprintf(w, "  [%d] Day %d: %s\n", i, d.Day, d.Title)
			for _, a := range d.Activities {
				fmt.Fprintf(w, "        %-8s %s\n", a.Time, a.Description)
			}
		}
	}
}

// printList numbers items from 0 so the indices match the edit flags.
func printList(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", label)
	for i, item := range items {
		fmt.Fprintf(w, "  [%d] %s\n", i, item)
	}
}

func printSummary(w io.Writer, s domain.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total treks\t%d\n", s.TotalTreks)
	fmt.Fprintf(tw, "Total participants\t%d\n", s.TotalParticipants)
	fmt.Fprintf(tw, "Total revenue\t%s\n", money(s.TotalRevenue))
	tw.Flush()
}

func dateRange(t domain.Trek) string {
	return t.StartDate.Format(dateLayout) + " to " + t.EndDate.Format(dateLayout)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
