package model

func (scheduler *standardScheduler) Verify() bool {
	return verify(scheduler.store, scheduler.evaluator, scheduler.indexer)
}

func verify(store *entityStore, evaluator conflictEvaluator, indexer slotIndexer) bool {
	//** Initialize professor-assistance
	professorAssistance := make(map[uint64][]bool)
	for _, professor := range store.professors {
		professorAssistance[professor.Id] = make([]bool, indexer.Slots())
	}

	//** Initialize classroom-assistance
	classroomAssistance := make(map[string][]bool)
	for _, classroom := range store.classrooms {
		classroomAssistance[classroom.Number] = make([]bool, indexer.Slots())
	}

	previousId := uint64(0)
	for _, lesson := range store.schedule {
		// Check that:
		// - Ids grow strictly along the schedule
		// - Day and slot belong to the weekly grid
		// - Course, professor and classroom exist
		if lesson.Id <= previousId || !lesson.DayOfWeek.Valid() || !lesson.TimeSlot.Valid() {
			return false
		}
		if course, professor, classroom := evaluator.Resolvable(lesson.LessonRequest); !course || !professor || !classroom {
			return false
		}

		// Check that neither the professor nor the classroom is already booked in the cell
		cell := indexer.Index(lesson.DayOfWeek, lesson.TimeSlot)
		if professorAssistance[lesson.ProfessorId][cell] || classroomAssistance[lesson.ClassroomNumber][cell] {
			return false
		}

		professorAssistance[lesson.ProfessorId][cell] = true     // Store professor assistance
		classroomAssistance[lesson.ClassroomNumber][cell] = true // Store classroom assistance
		previousId = lesson.Id
	}
	return true
}
