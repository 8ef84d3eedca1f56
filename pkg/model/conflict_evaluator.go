package model

import "github.com/samber/lo"

type conflictEvaluator interface {
	// Returns the committed lesson (other than candidate) that has the candidate's professor busy at the candidate's day and slot
	ProfessorBusy(candidate Lesson) (Lesson, bool)

	// Returns the committed lesson (other than candidate) that occupies the candidate's classroom at the candidate's day and slot
	ClassroomBusy(candidate Lesson) (Lesson, bool)

	// Checks whether the course, the professor and the classroom referenced by the request exist
	Resolvable(request LessonRequest) (course, professor, classroom bool)

	// Checks whether the classroom is free at the given day and slot
	Free(classroom string, day DayOfWeek, slot TimeSlot) bool

	// Checks whether the classroom satisfies the placement's capacity and projector requirements
	Fits(classroom Classroom, placement PlacementRequest) bool
}

func newConflictEvaluator(store *entityStore) conflictEvaluator {
	return &conflictEvaluatorStandard{store: store}
}

type conflictEvaluatorStandard struct {
	store *entityStore
}

func (evaluator *conflictEvaluatorStandard) ProfessorBusy(candidate Lesson) (Lesson, bool) {
	return lo.Find(evaluator.store.schedule, func(existing Lesson) bool {
		return existing.ProfessorId == candidate.ProfessorId &&
			existing.DayOfWeek == candidate.DayOfWeek &&
			existing.TimeSlot == candidate.TimeSlot &&
			existing.Id != candidate.Id // Skip the candidate itself when it is being edited in place
	})
}

func (evaluator *conflictEvaluatorStandard) ClassroomBusy(candidate Lesson) (Lesson, bool) {
	return lo.Find(evaluator.store.schedule, func(existing Lesson) bool {
		return existing.ClassroomNumber == candidate.ClassroomNumber &&
			existing.DayOfWeek == candidate.DayOfWeek &&
			existing.TimeSlot == candidate.TimeSlot &&
			existing.Id != candidate.Id
	})
}

func (evaluator *conflictEvaluatorStandard) Resolvable(request LessonRequest) (course, professor, classroom bool) {
	_, course = evaluator.store.course(request.CourseId)
	_, professor = evaluator.store.professor(request.ProfessorId)
	_, classroom = evaluator.store.classroom(request.ClassroomNumber)
	return course, professor, classroom
}

func (evaluator *conflictEvaluatorStandard) Free(classroom string, day DayOfWeek, slot TimeSlot) bool {
	return !lo.SomeBy(evaluator.store.schedule, func(lesson Lesson) bool {
		return lesson.ClassroomNumber == classroom && lesson.DayOfWeek == day && lesson.TimeSlot == slot
	})
}

func (evaluator *conflictEvaluatorStandard) Fits(classroom Classroom, placement PlacementRequest) bool {
	return classroom.Capacity >= placement.MinCapacity && (classroom.HasProjector || !placement.NeedsProjector)
}
