package export

import (
	"encoding/json"
	"io"

	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type Report struct {
	Lessons               []model.Lesson                                  `json:"lessons"`
	ProfessorSchedules    map[uint64][]model.Lesson                       `json:"professorSchedules"`
	ClassroomUtilization  map[string]float64                              `json:"classroomUtilization"`
	AvailableClassrooms   map[model.DayOfWeek]map[model.TimeSlot][]string `json:"availableClassrooms"`
	MostPopularCourseType model.CourseType                                `json:"mostPopularCourseType"`
}

func BuildReport(scheduler model.Scheduler) Report {
	report := Report{
		Lessons:               scheduler.Lessons(),
		ProfessorSchedules:    make(map[uint64][]model.Lesson),
		ClassroomUtilization:  make(map[string]float64),
		AvailableClassrooms:   make(map[model.DayOfWeek]map[model.TimeSlot][]string),
		MostPopularCourseType: scheduler.GetMostPopularCourseType(),
	}

	for _, professor := range scheduler.Professors() {
		report.ProfessorSchedules[professor.Id] = scheduler.GetProfessorSchedule(professor.Id)
	}

	for _, classroom := range scheduler.Classrooms() {
		report.ClassroomUtilization[classroom.Number] = scheduler.GetClassroomUtilization(classroom.Number)
	}

	for _, day := range model.Days {
		report.AvailableClassrooms[day] = lo.SliceToMap(model.TimeSlots, func(slot model.TimeSlot) (model.TimeSlot, []string) {
			return slot, scheduler.FindAvailableClassrooms(slot, day)
		})
	}

	return report
}

func WriteJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(report), "encoding report")
}
