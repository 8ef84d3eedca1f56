package model

import (
	"slices"

	"go.uber.org/zap"
)

// Scheduler places lessons on a weekly grid without double-booking professors or classrooms.
// Failures never abort the caller: mutators log a warning and report false (or do nothing).
// A Scheduler is not safe for concurrent use.
type Scheduler interface {
	AddProfessor(professor Professor) bool
	AddClassroom(classroom Classroom) bool
	AddCourse(course Course) bool

	// Returns the first conflict the request would introduce (professor conflicts take precedence) or nil.
	// A request has no id yet, so it is checked against every committed lesson.
	ValidateLesson(request LessonRequest) *Conflict
	// Like ValidateLesson for an edited copy of a committed lesson: the lesson with the same id is left out of the check
	ValidateEdit(lesson Lesson) *Conflict
	AddLesson(request LessonRequest) bool
	ReassignClassroom(lessonId uint64, classroomNumber string) bool
	CancelLesson(lessonId uint64)
	// Chooses a classroom for every placement and commits them all, or commits none
	AssignClassrooms(placements []PlacementRequest) ([]Lesson, error)

	FindAvailableClassrooms(slot TimeSlot, day DayOfWeek) []string
	GetProfessorSchedule(professorId uint64) []Lesson
	GetCourseSchedule(courseId uint64) []Lesson
	GetClassroomSchedule(classroomNumber string) []Lesson
	GetClassroomUtilization(classroomNumber string) float64
	GetMostPopularCourseType() CourseType

	Professors() []Professor
	Classrooms() []Classroom
	Courses() []Course
	Lessons() []Lesson

	// Checks every scheduling invariant over the committed lessons
	Verify() bool
}

type standardScheduler struct {
	store     *entityStore
	evaluator conflictEvaluator
	indexer   slotIndexer
	logger    *zap.Logger
}

func NewScheduler(logger *zap.Logger) Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := newEntityStore()
	return &standardScheduler{
		store:     store,
		evaluator: newConflictEvaluator(store),
		indexer:   newSlotIndexer(Days, TimeSlots),
		logger:    logger,
	}
}

func (scheduler *standardScheduler) AddProfessor(professor Professor) bool {
	if !scheduler.store.addProfessor(professor) {
		scheduler.logger.Warn("professor already exists", zap.Uint64("professorId", professor.Id))
		return false
	}
	scheduler.logger.Info("professor added", zap.Uint64("professorId", professor.Id), zap.String("name", professor.Name))
	return true
}

func (scheduler *standardScheduler) AddClassroom(classroom Classroom) bool {
	if !scheduler.store.addClassroom(classroom) {
		scheduler.logger.Warn("classroom already exists", zap.String("classroom", classroom.Number))
		return false
	}
	scheduler.logger.Info("classroom added", zap.String("classroom", classroom.Number))
	return true
}

func (scheduler *standardScheduler) AddCourse(course Course) bool {
	if !scheduler.store.addCourse(course) {
		scheduler.logger.Warn("course already exists", zap.Uint64("courseId", course.Id))
		return false
	}
	scheduler.logger.Info("course added", zap.Uint64("courseId", course.Id), zap.String("name", course.Name))
	return true
}

func (scheduler *standardScheduler) ValidateLesson(request LessonRequest) *Conflict {
	return scheduler.validate(Lesson{LessonRequest: request})
}

func (scheduler *standardScheduler) ValidateEdit(lesson Lesson) *Conflict {
	return scheduler.validate(lesson)
}

// validate is a pure read over the schedule; a committed lesson never conflicts with itself
func (scheduler *standardScheduler) validate(candidate Lesson) *Conflict {
	if existing, ok := scheduler.evaluator.ProfessorBusy(candidate); ok {
		return &Conflict{Type: ProfessorConflict, Lesson: candidate, Existing: existing}
	}
	if existing, ok := scheduler.evaluator.ClassroomBusy(candidate); ok {
		return &Conflict{Type: ClassroomConflict, Lesson: candidate, Existing: existing}
	}
	return nil
}

func (scheduler *standardScheduler) AddLesson(request LessonRequest) bool {
	lesson, err := scheduler.place(request)
	if err != nil {
		scheduler.logger.Warn("cannot add lesson", zap.Error(err))
		return false
	}
	scheduler.logger.Info("lesson added", zap.Uint64("lessonId", lesson.Id))
	return true
}

// place commits the request under a fresh id once it is conflict-free and all of its references resolve
func (scheduler *standardScheduler) place(request LessonRequest) (Lesson, error) {
	if conflict := scheduler.ValidateLesson(request); conflict != nil {
		return Lesson{}, conflict
	}

	course, professor, classroom := scheduler.evaluator.Resolvable(request)
	switch {
	case !course:
		return Lesson{}, ErrUnknownCourse
	case !professor:
		return Lesson{}, ErrUnknownProfessor
	case !classroom:
		return Lesson{}, ErrUnknownClassroom
	case !request.DayOfWeek.Valid() || !request.TimeSlot.Valid():
		return Lesson{}, ErrInvalidSlot
	}

	lesson := Lesson{
		Id:            scheduler.store.nextLessonId(),
		LessonRequest: request,
	}
	scheduler.store.appendLesson(lesson)
	return lesson, nil
}

func (scheduler *standardScheduler) ReassignClassroom(lessonId uint64, classroomNumber string) bool {
	index := scheduler.store.lessonIndex(lessonId)
	if index == -1 {
		scheduler.logger.Warn("cannot reassign classroom", zap.Uint64("lessonId", lessonId), zap.Error(ErrUnknownLesson))
		return false
	}

	if _, ok := scheduler.store.classroom(classroomNumber); !ok {
		scheduler.logger.Warn("cannot reassign classroom", zap.String("classroom", classroomNumber), zap.Error(ErrUnknownClassroom))
		return false
	}

	updated := scheduler.store.schedule[index]
	updated.ClassroomNumber = classroomNumber

	if conflict := scheduler.validate(updated); conflict != nil {
		scheduler.logger.Warn("cannot reassign classroom", zap.Uint64("lessonId", lessonId), zap.Error(conflict))
		return false
	}

	scheduler.store.replaceLesson(index, updated)
	scheduler.logger.Info("classroom reassigned", zap.Uint64("lessonId", lessonId), zap.String("classroom", classroomNumber))
	return true
}

func (scheduler *standardScheduler) CancelLesson(lessonId uint64) {
	index := scheduler.store.lessonIndex(lessonId)
	if index == -1 {
		scheduler.logger.Warn("cannot cancel lesson", zap.Uint64("lessonId", lessonId), zap.Error(ErrUnknownLesson))
		return
	}
	scheduler.store.removeLesson(index)
	scheduler.logger.Info("lesson cancelled", zap.Uint64("lessonId", lessonId))
}

func (scheduler *standardScheduler) Professors() []Professor {
	return slices.Clone(scheduler.store.professors)
}

func (scheduler *standardScheduler) Classrooms() []Classroom {
	return slices.Clone(scheduler.store.classrooms)
}

func (scheduler *standardScheduler) Courses() []Course {
	return slices.Clone(scheduler.store.courses)
}

func (scheduler *standardScheduler) Lessons() []Lesson {
	return slices.Clone(scheduler.store.schedule)
}
