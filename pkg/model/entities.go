package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
)

// Days in the order they appear on the weekly grid
var Days = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday}

func (day DayOfWeek) Valid() bool {
	return slices.Contains(Days, day)
}

// Offset returns the number of days between Monday and day
func (day DayOfWeek) Offset() int {
	return slices.Index(Days, day)
}

type TimeSlot string

const (
	Slot0830 TimeSlot = "8:30-10:00"
	Slot1015 TimeSlot = "10:15-11:45"
	Slot1215 TimeSlot = "12:15-13:45"
	Slot1400 TimeSlot = "14:00-15:30"
	Slot1545 TimeSlot = "15:45-17:15"
)

// TimeSlots in chronological order
var TimeSlots = []TimeSlot{Slot0830, Slot1015, Slot1215, Slot1400, Slot1545}

func (slot TimeSlot) Valid() bool {
	return slices.Contains(TimeSlots, slot)
}

// Bounds returns the start and end of the slot as offsets from midnight
func (slot TimeSlot) Bounds() (start time.Duration, end time.Duration, err error) {
	startStr, endStr, ok := strings.Cut(string(slot), "-")
	if !ok {
		return 0, 0, fmt.Errorf("malformed time slot %q", slot)
	}
	if start, err = parseClock(startStr); err != nil {
		return 0, 0, err
	}
	if end, err = parseClock(endStr); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseClock(clock string) (time.Duration, error) {
	hoursStr, minutesStr, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("malformed clock %q", clock)
	}
	hours, err := strconv.Atoi(hoursStr)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %v", clock, err)
	}
	minutes, err := strconv.Atoi(minutesStr)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %v", clock, err)
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}

type CourseType string

const (
	Lecture  CourseType = "Lecture"
	Seminar  CourseType = "Seminar"
	Lab      CourseType = "Lab"
	Practice CourseType = "Practice"
)

// CourseTypes in declared order; ties in popularity resolve to the earliest one
var CourseTypes = []CourseType{Lecture, Seminar, Lab, Practice}

func (courseType CourseType) Valid() bool {
	return slices.Contains(CourseTypes, courseType)
}

type Professor struct {
	Id         uint64 `json:"id" mapstructure:"id"`
	Name       string `json:"name" mapstructure:"name" validate:"required"`
	Department string `json:"department" mapstructure:"department"`
}

type Classroom struct {
	Number       string `json:"number" mapstructure:"number" validate:"required"`
	Capacity     uint64 `json:"capacity" mapstructure:"capacity"`
	HasProjector bool   `json:"hasProjector" mapstructure:"hasProjector"`
}

type Course struct {
	Id   uint64     `json:"id" mapstructure:"id"`
	Name string     `json:"name" mapstructure:"name" validate:"required"`
	Type CourseType `json:"type" mapstructure:"type" validate:"required,course_type"`
}
