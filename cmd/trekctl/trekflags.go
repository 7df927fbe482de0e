package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/DKS2424/Travel/internal/domain"
)

const dateLayout = "2006-01-02"

// trekFlags maps command-line flags onto trek fields.
type trekFlags struct {
	title, description, location, duration string
	difficulty, imageURL                   string
	startDate, endDate                     string
	price                                  float64
	maxParticipants, currentParticipants   int
	inclusions, exclusions                 []string
	itineraryFile                          string

	// Index-addressed list edits, update only.
	setInclusion, insertInclusion []string
	setExclusion, insertExclusion []string
	removeInclusion               []int
	removeExclusion               []int
	removeDay                     []int
}

func (f *trekFlags) addFields(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "trek title")
	fs.StringVar(&f.description, "description", "", "long description")
	fs.StringVar(&f.location, "location", "", "region or country")
	fs.StringVar(&f.duration, "duration", "", `length label, e.g. "14 days"`)
	fs.StringVar(&f.difficulty, "difficulty", "", "Easy, Moderate, Hard or Expert")
	fs.Float64Var(&f.price, "price", 0, "price per participant")
	fs.StringVar(&f.imageURL, "image-url", "", "cover image URL")
	fs.StringVar(&f.startDate, "start", "", "start date (YYYY-MM-DD)")
	fs.StringVar(&f.endDate, "end", "", "end date (YYYY-MM-DD)")
	fs.IntVar(&f.maxParticipants, "max", 0, "maximum participants")
	fs.IntVar(&f.currentParticipants, "booked", 0, "participants already booked")
	fs.StringArrayVar(&f.inclusions, "inclusion", nil, "included item (repeatable; replaces the list)")
	fs.StringArrayVar(&f.exclusions, "exclusion", nil, "excluded item (repeatable; replaces the list)")
	fs.StringVar(&f.itineraryFile, "itinerary-file", "", "YAML file with the day-by-day itinerary (replaces it)")
}

func (f *trekFlags) addEdits(fs *pflag.FlagSet) {
	fs.StringArrayVar(&f.setInclusion, "set-inclusion", nil, "replace inclusion: <index>=<text>")
	fs.StringArrayVar(&f.insertInclusion, "insert-inclusion", nil, "insert inclusion before index: <index>=<text>")
	fs.IntSliceVar(&f.removeInclusion, "remove-inclusion", nil, "remove inclusion at index")
	fs.StringArrayVar(&f.setExclusion, "set-exclusion", nil, "replace exclusion: <index>=<text>")
	fs.StringArrayVar(&f.insertExclusion, "insert-exclusion", nil, "insert exclusion before index: <index>=<text>")
	fs.IntSliceVar(&f.removeExclusion, "remove-exclusion", nil, "remove exclusion at index")
	fs.IntSliceVar(&f.removeDay, "remove-day", nil, "remove itinerary day at index")
}

// newTrek builds a create payload from the flags. Field rules beyond
// parsing are enforced by the service.
func (f *trekFlags) newTrek() (domain.NewTrek, error) {
	d, err := domain.ParseDifficulty(f.difficulty)
	if err != nil {
		return domain.NewTrek{}, err
	}
	start, err := parseDate("start", f.startDate)
	if err != nil {
		return domain.NewTrek{}, err
	}
	end, err := parseDate("end", f.endDate)
	if err != nil {
		return domain.NewTrek{}, err
	}
	itinerary, err := f.readItinerary()
	if err != nil {
		return domain.NewTrek{}, err
	}
	return domain.NewTrek{
		Title:               f.title,
		Description:         f.description,
		Location:            f.location,
		Duration:            f.duration,
		Difficulty:          d,
		Price:               f.price,
		ImageURL:            f.imageURL,
		StartDate:           start,
		EndDate:             end,
		MaxParticipants:     f.maxParticipants,
		CurrentParticipants: f.currentParticipants,
		Inclusions:          f.inclusions,
		Exclusions:          f.exclusions,
		Itinerary:           itinerary,
	}, nil
}

// patch builds a partial update holding only the flags that were given.
// List edits apply to current's lists: replacements first, then inserts,
// then removals. Removal indices refer to the list before any removal.
func (f *trekFlags) patch(fs *pflag.FlagSet, current domain.Trek) (domain.TrekPatch, error) {
	var p domain.TrekPatch
	if fs.Changed("title") {
		p.Title = &f.title
	}
	if fs.Changed("description") {
		p.Description = &f.description
	}
	if fs.Changed("location") {
		p.Location = &f.location
	}
	if fs.Changed("duration") {
		p.Duration = &f.duration
	}
	if fs.Changed("difficulty") {
		d, err := domain.ParseDifficulty(f.difficulty)
		if err != nil {
			return p, err
		}
		p.Difficulty = &d
	}
	if fs.Changed("price") {
		p.Price = &f.price
	}
	if fs.Changed("image-url") {
		p.ImageURL = &f.imageURL
	}
	if fs.Changed("start") {
		t, err := parseDate("start", f.startDate)
		if err != nil {
			return p, err
		}
		p.StartDate = &t
	}
	if fs.Changed("end") {
		t, err := parseDate("end", f.endDate)
		if err != nil {
			return p, err
		}
		p.EndDate = &t
	}
	if fs.Changed("max") {
		p.MaxParticipants = &f.maxParticipants
	}
	if fs.Changed("booked") {
		p.CurrentParticipants = &f.currentParticipants
	}

	inclusions, changed, err := editList(current.Inclusions, fs.Changed("inclusion"), f.inclusions,
		f.setInclusion, f.insertInclusion, f.removeInclusion)
	if err != nil {
		return p, fmt.Errorf("inclusions: %w", err)
	}
	if changed {
		p.Inclusions = &inclusions
	}

	exclusions, changed, err := editList(current.Exclusions, fs.Changed("exclusion"), f.exclusions,
		f.setExclusion, f.insertExclusion, f.removeExclusion)
	if err != nil {
		return p, fmt.Errorf("exclusions: %w", err)
	}
	if changed {
		p.Exclusions = &exclusions
	}

	if f.itineraryFile != "" || len(f.removeDay) > 0 {
		days := current.Itinerary
		if f.itineraryFile != "" {
			if days, err = f.readItinerary(); err != nil {
				return p, err
			}
		}
		if days, err = removeAll(days, f.removeDay); err != nil {
			return p, fmt.Errorf("itinerary: %w", err)
		}
		days = domain.RenumberDays(days)
		p.Itinerary = &days
	}
	return p, nil
}

// editList applies replace, set, insert and remove edits to list. changed
// reports whether any edit was requested.
func editList(list []string, replace bool, replacement, set, insert []string, remove []int) ([]string, bool, error) {
	if !replace && len(set) == 0 && len(insert) == 0 && len(remove) == 0 {
		return list, false, nil
	}
	out := slices.Clone(list)
	if replace {
		out = slices.Clone(replacement)
	}
	var err error
	for _, e := range set {
		i, text, perr := parseIndexed(e)
		if perr != nil {
			return nil, true, perr
		}
		if out, err = domain.ReplaceAt(out, i, text); err != nil {
			return nil, true, err
		}
	}
	for _, e := range insert {
		i, text, perr := parseIndexed(e)
		if perr != nil {
			return nil, true, perr
		}
		if out, err = domain.InsertAt(out, i, text); err != nil {
			return nil, true, err
		}
	}
	if out, err = removeAll(out, remove); err != nil {
		return nil, true, err
	}
	if out == nil {
		out = []string{}
	}
	return out, true, nil
}

// removeAll removes every index in idx, highest first, so each index refers
// to the list as it was passed in.
func removeAll[T any](list []T, idx []int) ([]T, error) {
	order := slices.Clone(idx)
	slices.Sort(order)
	order = slices.Compact(order)
	out := list
	var err error
	for _, i := range slices.Backward(order) {
		if out, err = domain.RemoveAt(out, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// parseIndexed splits "<index>=<text>".
func parseIndexed(s string) (int, string, error) {
	raw, text, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("expected <index>=<text>, got %q", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, "", fmt.Errorf("bad index in %q", s)
	}
	return i, text, nil
}

func parseDate(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD, got %q", name, s)
	}
	return t, nil
}

// itineraryFileDay is one day in an itinerary YAML file. Day numbers are
// assigned from position.
type itineraryFileDay struct {
	Title      string `yaml:"title"`
	Activities []struct {
		ID          string `yaml:"id"`
		Time        string `yaml:"time"`
		Description string `yaml:"description"`
	} `yaml:"activities"`
}

// readItinerary loads --itinerary-file. No file means no itinerary.
func (f *trekFlags) readItinerary() ([]domain.ItineraryDay, error) {
	if f.itineraryFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(f.itineraryFile)
	if err != nil {
		return nil, fmt.Errorf("reading itinerary: %w", err)
	}
	return parseItinerary(data)
}

func parseItinerary(data []byte) ([]domain.ItineraryDay, error) {
	var raw []itineraryFileDay
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing itinerary: %w", err)
	}
	days := make([]domain.ItineraryDay, len(raw))
	for i, d := range raw {
		days[i] = domain.ItineraryDay{Title: d.Title, Activities: make([]domain.Activity, len(d.Activities))}
		for j, a := range d.Activities {
			id := a.ID
			if id == "" {
				id = uuid.NewString()
			}
			days[i].Activities[j] = domain.Activity{ID: id, Time: a.Time, Description: a.Description}
		}
	}
	return domain.RenumberDays(days), nil
}
