package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/DKS2424/Travel/internal/domain"
)

// csvHeaders is the first row of a CSV export.
var csvHeaders = []string{
	"trek_id", "title", "location", "difficulty", "start_date", "end_date",
	"price", "max_participants", "current_participants", "inclusions", "exclusions",
	"day", "day_title", "activity_time", "activity_description",
}

// exportJSONRow is the JSON form of domain.ExportRow.
type exportJSONRow struct {
	TrekID              string   `json:"trek_id"`
	Title               string   `json:"title"`
	Location            string   `json:"location"`
	Difficulty          string   `json:"difficulty"`
	StartDate           string   `json:"start_date"`
	EndDate             string   `json:"end_date"`
	Price               float64  `json:"price"`
	MaxParticipants     int      `json:"max_participants"`
	CurrentParticipants int      `json:"current_participants"`
	Inclusions          []string `json:"inclusions"`
	Exclusions          []string `json:"exclusions"`
	Day                 int      `json:"day,omitempty"`
	DayTitle            string   `json:"day_title,omitempty"`
	ActivityTime        string   `json:"activity_time,omitempty"`
	ActivityDescription string   `json:"activity_description,omitempty"`
}

func exportCommand() *command {
	var format string
	return &command{
		name:    "export",
		summary: "Write the catalog as a flat CSV or JSON table",
		usage:   "trekctl export [--format csv|json]",
		flags: func(fs *pflag.FlagSet) {
			fs.StringVar(&format, "format", "csv", "output format: csv or json")
		},
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			if len(args) != 0 {
				return usagef("export takes no arguments")
			}
			if format != "csv" && format != "json" {
				return usagef("--format must be csv or json, got %q", format)
			}
			st, err := loadTreks(ctx, a)
			if err != nil {
				return err
			}
			rows := domain.ExportRows(st.Treks)
			if format == "json" {
				return writeExportJSON(a.std.out, rows)
			}
			return writeExportCSV(a.std.out, rows)
		},
	}
}

// writeExportCSV writes rows with a header line. List cells are
// pipe-separated so each row stays on one CSV line.
func writeExportCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		day := ""
		if r.Day > 0 {
			day = strconv.Itoa(r.Day)
		}
		record := []string{
			r.TrekID, r.Title, r.Location, r.Difficulty.String(),
			r.StartDate.Format(dateLayout), r.EndDate.Format(dateLayout),
			strconv.FormatFloat(r.Price, 'f', 2, 64),
			strconv.Itoa(r.MaxParticipants), strconv.Itoa(r.CurrentParticipants),
			strings.Join(r.Inclusions, "|"), strings.Join(r.Exclusions, "|"),
			day, r.DayTitle, r.ActivityTime, r.ActivityDescription,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeExportJSON(w io.Writer, rows []domain.ExportRow) error {
	out := make([]exportJSONRow, len(rows))
	for i, r := range rows {
		out[i] = exportJSONRow{
			TrekID:              r.TrekID,
			Title:               r.Title,
			Location:            r.Location,
			Difficulty:          r.Difficulty.String(),
			StartDate:           r.StartDate.Format(dateLayout),
			EndDate:             r.EndDate.Format(dateLayout),
			Price:               r.Price,
			MaxParticipants:     r.MaxParticipants,
			CurrentParticipants: r.CurrentParticipants,
			Inclusions:          nonNil(r.Inclusions),
			Exclusions:          nonNil(r.Exclusions),
			Day:                 r.Day,
			DayTitle:            r.DayTitle,
			ActivityTime:        r.ActivityTime,
			ActivityDescription: r.ActivityDescription,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
