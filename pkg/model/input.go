package model

import (
	"bytes"
	"encoding/json"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ScheduleInput is the content of a seed file. Records are applied in order: professors, classrooms, courses, lessons and finally placements
type ScheduleInput struct {
	Professors []Professor        `json:"professors" mapstructure:"professors" validate:"dive"`
	Classrooms []Classroom        `json:"classrooms" mapstructure:"classrooms" validate:"dive"`
	Courses    []Course           `json:"courses" mapstructure:"courses" validate:"dive"`
	Lessons    []LessonRequest    `json:"lessons" mapstructure:"lessons" validate:"dive"`
	Placements []PlacementRequest `json:"placements" mapstructure:"placements" validate:"dive"`
}

// ApplyReport lists the records a scheduler turned down while applying a ScheduleInput
type ApplyReport struct {
	RejectedProfessors []uint64 `json:"rejectedProfessors"`
	RejectedClassrooms []string `json:"rejectedClassrooms"`
	RejectedCourses    []uint64 `json:"rejectedCourses"`
	RejectedLessons    []int    `json:"rejectedLessons"` // Positions in ScheduleInput.Lessons
	Placed             []Lesson `json:"placed"`
	PlacementError     string   `json:"placementError,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("day_of_week", func(field validator.FieldLevel) bool {
		return DayOfWeek(field.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("time_slot", func(field validator.FieldLevel) bool {
		return TimeSlot(field.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("course_type", func(field validator.FieldLevel) bool {
		return CourseType(field.Field().String()).Valid()
	})
}

func InputFromJson(file string) (ScheduleInput, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return ScheduleInput{}, errors.Wrapf(err, "reading input file %v", file)
	}
	return ParseInput(content)
}

func ParseInput(content []byte) (ScheduleInput, error) {
	// Numbers stay json.Number so ids beyond 2^53 keep every digit
	var inputJson map[string]any
	jsonDecoder := json.NewDecoder(bytes.NewReader(content))
	jsonDecoder.UseNumber()
	if err := jsonDecoder.Decode(&inputJson); err != nil {
		return ScheduleInput{}, errors.Wrap(err, "parsing input json")
	}
	if jsonDecoder.More() {
		return ScheduleInput{}, errors.New("parsing input json: unexpected data after the top-level object")
	}

	var input ScheduleInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &input,
	})
	if err != nil {
		return ScheduleInput{}, errors.Wrap(err, "building input decoder")
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ScheduleInput{}, errors.Wrap(err, "decoding input")
	}

	if err := validate.Struct(input); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return ScheduleInput{}, errors.Errorf("invalid input: %v", strings.Join(lo.Map(fieldErrors, func(fieldError validator.FieldError, _ int) string {
				return fieldError.Namespace() + " fails \"" + fieldError.Tag() + "\""
			}), "; "))
		}
		return ScheduleInput{}, errors.Wrap(err, "validating input")
	}

	return input, nil
}

// Apply feeds the input through the scheduler's public operations, so every scheduling invariant holds after loading
func (input ScheduleInput) Apply(scheduler Scheduler) ApplyReport {
	report := ApplyReport{
		RejectedProfessors: make([]uint64, 0),
		RejectedClassrooms: make([]string, 0),
		RejectedCourses:    make([]uint64, 0),
		RejectedLessons:    make([]int, 0),
		Placed:             make([]Lesson, 0),
	}

	for _, professor := range input.Professors {
		if !scheduler.AddProfessor(professor) {
			report.RejectedProfessors = append(report.RejectedProfessors, professor.Id)
		}
	}
	for _, classroom := range input.Classrooms {
		if !scheduler.AddClassroom(classroom) {
			report.RejectedClassrooms = append(report.RejectedClassrooms, classroom.Number)
		}
	}
	for _, course := range input.Courses {
		if !scheduler.AddCourse(course) {
			report.RejectedCourses = append(report.RejectedCourses, course.Id)
		}
	}
	for i, lesson := range input.Lessons {
		if !scheduler.AddLesson(lesson) {
			report.RejectedLessons = append(report.RejectedLessons, i)
		}
	}

	placed, err := scheduler.AssignClassrooms(input.Placements)
	if err != nil {
		report.PlacementError = err.Error()
	} else {
		report.Placed = placed
	}

	return report
}
