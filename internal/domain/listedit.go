package domain

import "fmt"

// ReplaceAt returns a copy of list with the element at i set to v.
func ReplaceAt[T any](list []T, i int, v T) ([]T, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrValidation, i, len(list))
	}
	out := append([]T(nil), list...)
	out[i] = v
	return out, nil
}

// InsertAt returns a copy of list with v inserted before index i.
// i == len(list) appends.
func InsertAt[T any](list []T, i int, v T) ([]T, error) {
	if i < 0 || i > len(list) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d]", ErrValidation, i, len(list))
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, v)
	return append(out, list[i:]...), nil
}

// RemoveAt returns a copy of list without the element at i.
func RemoveAt[T any](list []T, i int) ([]T, error) {
	if i < 0 || i >= len(list) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrValidation, i, len(list))
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), nil
}

// RenumberDays sets each day's Day field to its 1-based position.
func RenumberDays(days []ItineraryDay) []ItineraryDay {
	out := append([]ItineraryDay(nil), days...)
	for i := range out {
		out[i].Day = i + 1
	}
	return out
}
