package model

import "fmt"

// LessonRequest is a lesson that has not been committed to a schedule yet, hence it carries no id
type LessonRequest struct {
	CourseId        uint64    `json:"courseId" mapstructure:"courseId"`
	ProfessorId     uint64    `json:"professorId" mapstructure:"professorId"`
	ClassroomNumber string    `json:"classroomNumber" mapstructure:"classroomNumber" validate:"required"`
	DayOfWeek       DayOfWeek `json:"dayOfWeek" mapstructure:"dayOfWeek" validate:"required,day_of_week"`
	TimeSlot        TimeSlot  `json:"timeSlot" mapstructure:"timeSlot" validate:"required,time_slot"`
}

// Lesson is a committed lesson. Its id is assigned by the scheduler and is never reused
type Lesson struct {
	Id uint64 `json:"lessonId"`
	LessonRequest
}

// PlacementRequest is a lesson whose classroom is left for the scheduler to choose
type PlacementRequest struct {
	CourseId       uint64    `json:"courseId" mapstructure:"courseId"`
	ProfessorId    uint64    `json:"professorId" mapstructure:"professorId"`
	DayOfWeek      DayOfWeek `json:"dayOfWeek" mapstructure:"dayOfWeek" validate:"required,day_of_week"`
	TimeSlot       TimeSlot  `json:"timeSlot" mapstructure:"timeSlot" validate:"required,time_slot"`
	MinCapacity    uint64    `json:"minCapacity" mapstructure:"minCapacity"`
	NeedsProjector bool      `json:"needsProjector" mapstructure:"needsProjector"`
}

func (request PlacementRequest) withClassroom(number string) LessonRequest {
	return LessonRequest{
		CourseId:        request.CourseId,
		ProfessorId:     request.ProfessorId,
		ClassroomNumber: number,
		DayOfWeek:       request.DayOfWeek,
		TimeSlot:        request.TimeSlot,
	}
}

type ConflictType string

const (
	ProfessorConflict ConflictType = "ProfessorConflict"
	ClassroomConflict ConflictType = "ClassroomConflict"
)

// Conflict describes a double-booking: Lesson is the candidate (Id is 0 when it was never committed) and Existing is the committed lesson it clashes with
type Conflict struct {
	Type     ConflictType `json:"type"`
	Lesson   Lesson       `json:"lesson"`
	Existing Lesson       `json:"existing"`
}

func (conflict *Conflict) Error() string {
	return fmt.Sprintf("%v: %v on %v at %v clashes with lesson %v", conflict.Type, conflict.subject(), conflict.Lesson.DayOfWeek, conflict.Lesson.TimeSlot, conflict.Existing.Id)
}

func (conflict *Conflict) subject() string {
	if conflict.Type == ProfessorConflict {
		return fmt.Sprintf("professor %v", conflict.Lesson.ProfessorId)
	}
	return fmt.Sprintf("classroom %v", conflict.Lesson.ClassroomNumber)
}
