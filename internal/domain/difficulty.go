package domain

import "fmt"

// Difficulty is the four-level trek grading. The zero value is invalid.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyHard     Difficulty = "Hard"
	DifficultyExpert   Difficulty = "Expert"
)

// Difficulties lists every valid level in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyModerate, DifficultyHard, DifficultyExpert}

// ParseDifficulty returns the Difficulty named by s.
// Matching is exact: "easy" is rejected.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: difficulty must be one of Easy, Moderate, Hard, Expert", ErrValidation)
	}
	return d, nil
}

// Valid reports whether d is one of the four levels.
func (d Difficulty) Valid() bool {
	return d.Rank() > 0
}

// Rank orders levels from 1 (Easy) to 4 (Expert); 0 for invalid values.
func (d Difficulty) Rank() int {
	for i, v := range Difficulties {
		if v == d {
			return i + 1
		}
	}
	return 0
}

func (d Difficulty) String() string {
	return string(d)
}
