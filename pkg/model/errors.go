package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCourse    = errors.New("course does not exist")
	ErrUnknownProfessor = errors.New("professor does not exist")
	ErrUnknownClassroom = errors.New("classroom does not exist")
	ErrUnknownLesson    = errors.New("lesson does not exist")
	ErrInvalidSlot      = errors.New("day of week or time slot is not part of the weekly grid")
)

type unassignableError struct {
	day  DayOfWeek
	slot TimeSlot
}

func (err unassignableError) Error() string {
	return fmt.Sprintf("not all placements on %v at %v can be assigned a classroom", err.day, err.slot)
}

// IsUnassignable reports whether err was caused by a batch that does not admit a classroom for every placement
func IsUnassignable(err error) bool {
	var target unassignableError
	return errors.As(err, &target)
}
