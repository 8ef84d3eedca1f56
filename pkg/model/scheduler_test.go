package model

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedScheduler() (Scheduler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return NewScheduler(zap.New(core)), logs
}

// seed registers professors 1..professors, classrooms "101".."10n" and one Lecture course per id in courses
func seed(scheduler Scheduler, professors, classrooms int, courses ...Course) {
	for i := 1; i <= professors; i++ {
		scheduler.AddProfessor(Professor{Id: uint64(i), Name: "Professor", Department: "Department"})
	}
	for i := 1; i <= classrooms; i++ {
		scheduler.AddClassroom(Classroom{Number: classroomNumber(i), Capacity: 30, HasProjector: i%2 == 1})
	}
	for _, course := range courses {
		scheduler.AddCourse(course)
	}
}

func classroomNumber(i int) string {
	return []string{"", "101", "102", "103", "104", "105", "106"}[i]
}

func lecture(id uint64) Course {
	return Course{Id: id, Name: "Course", Type: Lecture}
}

func TestAddEntities(t *testing.T) {
	t.Run("Duplicate professor is ignored", func(t *testing.T) {
		//** Arrange
		scheduler, logs := newObservedScheduler()

		//** Act
		first := scheduler.AddProfessor(Professor{Id: 1, Name: "First"})
		second := scheduler.AddProfessor(Professor{Id: 1, Name: "Second"})

		//** Assert
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, []Professor{{Id: 1, Name: "First"}}, scheduler.Professors())
		assert.Equal(t, 1, logs.FilterMessage("professor already exists").Len())
	})

	t.Run("Duplicate classroom is ignored", func(t *testing.T) {
		scheduler, logs := newObservedScheduler()

		assert.True(t, scheduler.AddClassroom(Classroom{Number: "101", Capacity: 30}))
		assert.False(t, scheduler.AddClassroom(Classroom{Number: "101", Capacity: 50}))

		assert.Equal(t, []Classroom{{Number: "101", Capacity: 30}}, scheduler.Classrooms())
		assert.Equal(t, 1, logs.FilterMessage("classroom already exists").Len())
	})

	t.Run("Duplicate course is ignored", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()

		assert.True(t, scheduler.AddCourse(Course{Id: 1, Name: "Physics", Type: Lab}))
		assert.False(t, scheduler.AddCourse(Course{Id: 1, Name: "Chemistry", Type: Seminar}))

		assert.Equal(t, []Course{{Id: 1, Name: "Physics", Type: Lab}}, scheduler.Courses())
	})

	t.Run("Getters return copies", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))

		professors := scheduler.Professors()
		professors[0].Name = "Changed"

		assert.Equal(t, "Professor", scheduler.Professors()[0].Name)
	})
}

func TestAddLesson(t *testing.T) {
	request := LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830}

	t.Run("First lesson gets id 1", func(t *testing.T) {
		//** Arrange
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))

		//** Act
		ok := scheduler.AddLesson(request)

		//** Assert
		require.True(t, ok)
		assert.Equal(t, []Lesson{{Id: 1, LessonRequest: request}}, scheduler.Lessons())
	})

	t.Run("Professor conflict is rejected", func(t *testing.T) {
		//** Arrange
		scheduler, logs := newObservedScheduler()
		seed(scheduler, 1, 2, lecture(1))
		require.True(t, scheduler.AddLesson(request))

		clashing := request
		clashing.ClassroomNumber = "102"

		//** Act
		conflict := scheduler.ValidateLesson(clashing)
		ok := scheduler.AddLesson(clashing)

		//** Assert
		require.NotNil(t, conflict)
		assert.Equal(t, ProfessorConflict, conflict.Type)
		assert.Equal(t, uint64(1), conflict.Existing.Id)
		assert.Equal(t, clashing, conflict.Lesson.LessonRequest)
		assert.False(t, ok)
		assert.Len(t, scheduler.Lessons(), 1)
		assert.Equal(t, 1, logs.FilterMessage("cannot add lesson").Len())
	})

	t.Run("Classroom conflict is rejected", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 2, 1, lecture(1))
		require.True(t, scheduler.AddLesson(request))

		clashing := request
		clashing.ProfessorId = 2

		conflict := scheduler.ValidateLesson(clashing)
		require.NotNil(t, conflict)
		assert.Equal(t, ClassroomConflict, conflict.Type)
		assert.False(t, scheduler.AddLesson(clashing))
		assert.Len(t, scheduler.Lessons(), 1)
	})

	t.Run("Professor conflict takes precedence", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		require.True(t, scheduler.AddLesson(request))

		conflict := scheduler.ValidateLesson(request)

		require.NotNil(t, conflict)
		assert.Equal(t, ProfessorConflict, conflict.Type)
	})

	t.Run("Same professor and classroom at another slot is accepted", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		require.True(t, scheduler.AddLesson(request))

		later := request
		later.TimeSlot = Slot1015

		assert.Nil(t, scheduler.ValidateLesson(later))
		assert.True(t, scheduler.AddLesson(later))
	})

	t.Run("Unresolvable references are rejected", func(t *testing.T) {
		scenarios := map[string]LessonRequest{
			"unknown course":    {CourseId: 9, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830},
			"unknown professor": {CourseId: 1, ProfessorId: 9, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830},
			"unknown classroom": {CourseId: 1, ProfessorId: 1, ClassroomNumber: "909", DayOfWeek: Monday, TimeSlot: Slot0830},
			"unknown day":       {CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: "Sunday", TimeSlot: Slot0830},
			"unknown slot":      {CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: "7:00-8:00"},
		}

		for name, scenario := range scenarios {
			t.Run(name, func(t *testing.T) {
				scheduler, logs := newObservedScheduler()
				seed(scheduler, 1, 1, lecture(1))

				assert.False(t, scheduler.AddLesson(scenario))
				assert.Empty(t, scheduler.Lessons())
				assert.Equal(t, 1, logs.FilterMessage("cannot add lesson").Len())
			})
		}
	})

	t.Run("Typed errors describe the rejection", func(t *testing.T) {
		scheduler := NewScheduler(nil).(*standardScheduler)
		seed(scheduler, 1, 1, lecture(1))

		_, err := scheduler.place(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "909", DayOfWeek: Monday, TimeSlot: Slot0830})
		assert.ErrorIs(t, err, ErrUnknownClassroom)

		_, err = scheduler.place(request)
		require.NoError(t, err)

		_, err = scheduler.place(request)
		var conflict *Conflict
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, ProfessorConflict, conflict.Type)
		assert.Contains(t, err.Error(), "professor 1")
	})
}

func TestValidateEdit(t *testing.T) {
	//** Arrange
	scheduler, _ := newObservedScheduler()
	seed(scheduler, 2, 2, lecture(1))
	require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830}))
	require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 2, ClassroomNumber: "102", DayOfWeek: Monday, TimeSlot: Slot1015}))
	committed := scheduler.Lessons()[0]

	t.Run("Unchanged lesson does not clash with itself", func(t *testing.T) {
		assert.Nil(t, scheduler.ValidateEdit(committed))
		assert.NotNil(t, scheduler.ValidateLesson(committed.LessonRequest))
	})

	t.Run("Moving to a free slot", func(t *testing.T) {
		edited := committed
		edited.TimeSlot = Slot1215

		assert.Nil(t, scheduler.ValidateEdit(edited))
	})

	t.Run("Moving onto another lesson's classroom", func(t *testing.T) {
		edited := committed
		edited.ClassroomNumber, edited.TimeSlot = "102", Slot1015

		conflict := scheduler.ValidateEdit(edited)

		require.NotNil(t, conflict)
		assert.Equal(t, ClassroomConflict, conflict.Type)
		assert.Equal(t, uint64(2), conflict.Existing.Id)
	})

	t.Run("Nothing is committed", func(t *testing.T) {
		assert.Len(t, scheduler.Lessons(), 2)
		assert.Equal(t, committed, scheduler.Lessons()[0])
	})
}

func TestReassignClassroom(t *testing.T) {
	setup := func() (Scheduler, *observer.ObservedLogs) {
		scheduler, logs := newObservedScheduler()
		seed(scheduler, 2, 3, lecture(1))
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830})
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 2, ClassroomNumber: "102", DayOfWeek: Monday, TimeSlot: Slot0830})
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 2, ClassroomNumber: "101", DayOfWeek: Tuesday, TimeSlot: Slot1215})
		return scheduler, logs
	}

	t.Run("Only the classroom changes", func(t *testing.T) {
		//** Arrange
		scheduler, _ := setup()
		before := scheduler.Lessons()

		//** Act
		ok := scheduler.ReassignClassroom(1, "103")

		//** Assert
		require.True(t, ok)
		after := scheduler.Lessons()
		expected := before
		expected[0].ClassroomNumber = "103"
		if diff := cmp.Diff(expected, after); diff != "" {
			t.Errorf("unexpected schedule (-want +got):\n%s", diff)
		}
	})

	t.Run("Reassigning to its own classroom is not a conflict", func(t *testing.T) {
		scheduler, _ := setup()

		assert.True(t, scheduler.ReassignClassroom(1, "101"))
		assert.True(t, scheduler.Verify())
	})

	t.Run("Occupied classroom is rejected", func(t *testing.T) {
		scheduler, logs := setup()
		before := scheduler.Lessons()

		assert.False(t, scheduler.ReassignClassroom(1, "102"))
		assert.Equal(t, before, scheduler.Lessons())
		assert.Equal(t, 1, logs.FilterMessage("cannot reassign classroom").Len())
	})

	t.Run("Unknown lesson is rejected", func(t *testing.T) {
		scheduler, _ := setup()

		assert.False(t, scheduler.ReassignClassroom(42, "103"))
	})

	t.Run("Unknown classroom is rejected", func(t *testing.T) {
		scheduler, _ := setup()
		before := scheduler.Lessons()

		assert.False(t, scheduler.ReassignClassroom(1, "909"))
		assert.Equal(t, before, scheduler.Lessons())
	})
}

func TestCancelLesson(t *testing.T) {
	t.Run("Cancelled lesson leaves every schedule", func(t *testing.T) {
		//** Arrange
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830})
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot1015})
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot1215})

		//** Act
		scheduler.CancelLesson(2)

		//** Assert
		ids := func(lessons []Lesson) []uint64 {
			result := make([]uint64, 0, len(lessons))
			for _, lesson := range lessons {
				result = append(result, lesson.Id)
			}
			return result
		}
		assert.Equal(t, []uint64{1, 3}, ids(scheduler.GetProfessorSchedule(1)))
		assert.Equal(t, []uint64{1, 3}, ids(scheduler.GetClassroomSchedule("101")))
		assert.Equal(t, []uint64{1, 3}, ids(scheduler.GetCourseSchedule(1)))
	})

	t.Run("Ids are never reused", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		request := LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Friday, TimeSlot: Slot1545}

		require.True(t, scheduler.AddLesson(request))
		scheduler.CancelLesson(1)
		require.True(t, scheduler.AddLesson(request))

		assert.Equal(t, []Lesson{{Id: 2, LessonRequest: request}}, scheduler.Lessons())
	})

	t.Run("Unknown lesson is a no-op", func(t *testing.T) {
		scheduler, logs := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830})

		scheduler.CancelLesson(7)

		assert.Len(t, scheduler.Lessons(), 1)
		assert.Equal(t, 1, logs.FilterMessage("cannot cancel lesson").Len())
	})
}

func TestFindAvailableClassrooms(t *testing.T) {
	//** Arrange
	scheduler, _ := newObservedScheduler()
	seed(scheduler, 2, 3, lecture(1))
	scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830})
	scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 2, ClassroomNumber: "103", DayOfWeek: Monday, TimeSlot: Slot0830})

	//** Act & Assert
	assert.Equal(t, []string{"102"}, scheduler.FindAvailableClassrooms(Slot0830, Monday))
	assert.Equal(t, []string{"101", "102", "103"}, scheduler.FindAvailableClassrooms(Slot1015, Monday))
	assert.Equal(t, []string{"101", "102", "103"}, scheduler.FindAvailableClassrooms(Slot0830, Tuesday))
}

func TestFindAvailableClassroomsFromRawValues(t *testing.T) {
	scheduler, _ := newObservedScheduler()
	seed(scheduler, 1, 2, lecture(1))
	require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830}))

	assert.Equal(t, []string{"102"}, scheduler.FindAvailableClassrooms("8:30-10:00", "Monday"))
}

func TestGetClassroomUtilization(t *testing.T) {
	t.Run("Five lessons book a fifth of the week", func(t *testing.T) {
		//** Arrange
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		for i, day := range Days {
			require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: day, TimeSlot: TimeSlots[i]}))
		}

		//** Act
		utilization := scheduler.GetClassroomUtilization("101")

		//** Assert
		assert.Equal(t, 20.00, utilization)
	})

	t.Run("Result is rounded to two decimals", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: Slot0830}))

		assert.Equal(t, 4.0, scheduler.GetClassroomUtilization("101"))
	})

	t.Run("Fully booked classroom", func(t *testing.T) {
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 1, 1, lecture(1))
		for _, day := range Days {
			for _, slot := range TimeSlots {
				require.True(t, scheduler.AddLesson(LessonRequest{CourseId: 1, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: day, TimeSlot: slot}))
			}
		}

		assert.Equal(t, 100.0, scheduler.GetClassroomUtilization("101"))
	})

	t.Run("Unknown classroom yields zero", func(t *testing.T) {
		scheduler, logs := newObservedScheduler()

		assert.Equal(t, 0.0, scheduler.GetClassroomUtilization("404"))
		assert.Equal(t, 1, logs.FilterMessage("cannot compute utilization").Len())
	})
}

func TestGetMostPopularCourseType(t *testing.T) {
	courses := []Course{
		{Id: 1, Name: "Lab", Type: Lab},
		{Id: 2, Name: "Lecture", Type: Lecture},
		{Id: 3, Name: "Seminar", Type: Seminar},
		{Id: 4, Name: "Practice", Type: Practice},
	}

	scenarios := []struct {
		name     string
		courses  []uint64 // Course of every lesson
		expected CourseType
	}{
		{"Empty schedule", []uint64{}, Lecture},
		{"Three labs and two lectures", []uint64{1, 1, 1, 2, 2}, Lab},
		{"Tie resolves to the declared order", []uint64{4, 1, 3, 4, 1, 3}, Seminar},
		{"Single practice", []uint64{4}, Practice},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			//** Arrange
			scheduler, _ := newObservedScheduler()
			seed(scheduler, 1, 1, courses...)
			for i, course := range scenario.courses {
				day, slot := Days[i/len(TimeSlots)], TimeSlots[i%len(TimeSlots)]
				require.True(t, scheduler.AddLesson(LessonRequest{CourseId: course, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: day, TimeSlot: slot}))
			}

			//** Act & Assert
			assert.Equal(t, scenario.expected, scheduler.GetMostPopularCourseType())
		})
	}

	t.Run("Lessons of unknown courses are not counted", func(t *testing.T) {
		//** Arrange
		scheduler := NewScheduler(nil).(*standardScheduler)
		seed(scheduler, 1, 1, courses...)
		for i, course := range []uint64{1, 1, 1, 3} {
			require.True(t, scheduler.AddLesson(LessonRequest{CourseId: course, ProfessorId: 1, ClassroomNumber: "101", DayOfWeek: Monday, TimeSlot: TimeSlots[i]}))
		}
		require.Equal(t, Lab, scheduler.GetMostPopularCourseType())

		for i := range 3 {
			scheduler.store.schedule[i].CourseId = 99
		}

		//** Act & Assert
		assert.Equal(t, Seminar, scheduler.GetMostPopularCourseType())
	})
}

func TestRandomOperationsKeepScheduleConsistent(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for range 10 {
		//** Arrange
		scheduler, _ := newObservedScheduler()
		seed(scheduler, 4, 4, lecture(1), lecture(2))

		//** Act
		for range 200 {
			switch random.Intn(4) {
			case 0, 1:
				scheduler.AddLesson(LessonRequest{
					CourseId:        uint64(random.Intn(3) + 1),
					ProfessorId:     uint64(random.Intn(5) + 1),
					ClassroomNumber: classroomNumber(random.Intn(5) + 1),
					DayOfWeek:       Days[random.Intn(len(Days))],
					TimeSlot:        TimeSlots[random.Intn(len(TimeSlots))],
				})
			case 2:
				scheduler.ReassignClassroom(uint64(random.Intn(60)+1), classroomNumber(random.Intn(5)+1))
			case 3:
				scheduler.CancelLesson(uint64(random.Intn(60) + 1))
			}
		}

		//** Assert
		lessons := scheduler.Lessons()
		require.True(t, scheduler.Verify())
		for i := range lessons {
			for j := i + 1; j < len(lessons); j++ {
				a, b := lessons[i], lessons[j]
				sameCell := a.DayOfWeek == b.DayOfWeek && a.TimeSlot == b.TimeSlot
				assert.False(t, sameCell && a.ProfessorId == b.ProfessorId, "professor double-booked: %v %v", a, b)
				assert.False(t, sameCell && a.ClassroomNumber == b.ClassroomNumber, "classroom double-booked: %v %v", a, b)
			}
		}
	}
}
