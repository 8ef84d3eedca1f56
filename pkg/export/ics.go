package export

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const productId = "-//limaJavier//scheduling//EN"

// ProfessorCalendar renders the professor's lessons as weekly recurring events, the first occurrence falling in the week that starts on weekStart (a Monday)
func ProfessorCalendar(scheduler model.Scheduler, professorId uint64, weekStart time.Time) (string, error) {
	professor, ok := lo.Find(scheduler.Professors(), func(professor model.Professor) bool { return professor.Id == professorId })
	if !ok {
		return "", errors.Wrapf(model.ErrUnknownProfessor, "professor %v", professorId)
	}
	if weekStart.Weekday() != time.Monday {
		return "", errors.Errorf("week start %v is not a Monday", weekStart.Format(time.DateOnly))
	}

	courses := lo.KeyBy(scheduler.Courses(), func(course model.Course) uint64 { return course.Id })

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productId)
	cal.SetXWRCalName(professor.Name)

	for _, lesson := range scheduler.GetProfessorSchedule(professorId) {
		start, end, err := lesson.TimeSlot.Bounds()
		if err != nil {
			return "", errors.Wrapf(err, "lesson %v", lesson.Id)
		}
		day := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day()+lesson.DayOfWeek.Offset(), 0, 0, 0, 0, weekStart.Location())

		summary := fmt.Sprintf("course %v", lesson.CourseId)
		if course, ok := courses[lesson.CourseId]; ok {
			summary = fmt.Sprintf("%v (%v)", course.Name, course.Type)
		}

		event := cal.AddEvent(fmt.Sprintf("lesson-%d@scheduling", lesson.Id))
		event.SetDtStampTime(weekStart)
		event.SetStartAt(day.Add(start))
		event.SetEndAt(day.Add(end))
		event.SetSummary(summary)
		event.SetLocation(lesson.ClassroomNumber)
		event.AddRrule("FREQ=WEEKLY")
	}

	return cal.Serialize(), nil
}
