package model

import (
	"fmt"
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func (scheduler *standardScheduler) AssignClassrooms(placements []PlacementRequest) ([]Lesson, error) {
	if len(placements) == 0 {
		return []Lesson{}, nil
	}

	//** Check every placement on its own and against the rest of the batch
	professorSlots := make(map[[2]uint64]int) // (professor, cell) -> placement that books it first
	for i, placement := range placements {
		if !placement.DayOfWeek.Valid() || !placement.TimeSlot.Valid() {
			return nil, scheduler.rejectBatch(fmt.Errorf("placement %d: %w", i, ErrInvalidSlot))
		}
		if _, ok := scheduler.store.course(placement.CourseId); !ok {
			return nil, scheduler.rejectBatch(fmt.Errorf("placement %d: %w", i, ErrUnknownCourse))
		}
		if _, ok := scheduler.store.professor(placement.ProfessorId); !ok {
			return nil, scheduler.rejectBatch(fmt.Errorf("placement %d: %w", i, ErrUnknownProfessor))
		}

		candidate := Lesson{LessonRequest: placement.withClassroom("")}
		if existing, ok := scheduler.evaluator.ProfessorBusy(candidate); ok {
			return nil, scheduler.rejectBatch(&Conflict{Type: ProfessorConflict, Lesson: candidate, Existing: existing})
		}

		key := [2]uint64{placement.ProfessorId, scheduler.indexer.Index(placement.DayOfWeek, placement.TimeSlot)}
		if first, ok := professorSlots[key]; ok {
			return nil, scheduler.rejectBatch(fmt.Errorf("placements %d and %d book professor %v on %v at %v", first, i, placement.ProfessorId, placement.DayOfWeek, placement.TimeSlot))
		}
		professorSlots[key] = i
	}

	//** Group placements that share a cell of the weekly grid
	simultaneous := lo.GroupBy(lo.Range(len(placements)), func(i int) uint64 {
		return scheduler.indexer.Index(placements[i].DayOfWeek, placements[i].TimeSlot)
	})
	cells := lo.Keys(simultaneous)
	slices.Sort(cells)

	//** Match each group against the classrooms still free in its cell
	classrooms := make([]string, len(placements))
	for _, cell := range cells {
		day, slot := scheduler.indexer.Attributes(cell)
		indices := simultaneous[cell]

		rooms := lo.Filter(scheduler.store.classrooms, func(classroom Classroom, _ int) bool {
			return scheduler.evaluator.Free(classroom.Number, day, slot)
		})

		assignments, err := assignRooms(indices, rooms, func(i int, room Classroom) bool {
			return scheduler.evaluator.Fits(room, placements[i])
		})
		if _, ok := err.(unassignableError); ok {
			return nil, scheduler.rejectBatch(unassignableError{day: day, slot: slot})
		} else if err != nil {
			return nil, scheduler.rejectBatch(err)
		}

		for i, room := range assignments {
			classrooms[i] = room
		}
	}

	//** Commit the whole batch
	lessons := make([]Lesson, 0, len(placements))
	for i, placement := range placements {
		lesson, err := scheduler.place(placement.withClassroom(classrooms[i]))
		if err != nil {
			// Every check above holds for the committed schedule, so placing cannot fail
			scheduler.logger.DPanic("assigned placement was rejected", zap.Int("placement", i), zap.Error(err))
			return lessons, err
		}
		lessons = append(lessons, lesson)
	}

	scheduler.logger.Info("classrooms assigned", zap.Int("lessons", len(lessons)))
	return lessons, nil
}

func (scheduler *standardScheduler) rejectBatch(err error) error {
	scheduler.logger.Warn("cannot assign classrooms", zap.Error(err))
	return err
}

// assignRooms finds a maximum matching between placements and rooms; placement i may take room r if and only if fits(i, r)
func assignRooms(placements []int, rooms []Classroom, fits func(placement int, room Classroom) bool) (map[int]string, error) {
	neighbors := func(placementAny any, roomAny any) (bool, error) {
		return fits(placementAny.(int), roomAny.(Classroom)), nil
	}

	// Transform placements and rooms to slices of any
	placementsAny, roomsAny := lo.Map(placements, func(placement int, _ int) any { return placement }), lo.Map(rooms, func(room Classroom, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(placementsAny, roomsAny, neighbors)
	if err != nil {
		return nil, err
	}

	matching := graph.LargestMatching()

	// Check the matching covers every placement
	if len(matching) < len(placements) {
		return nil, unassignableError{}
	}

	assignments := make(map[int]string, len(placements))
	for _, edge := range matching {
		placementIndex, roomIndex := edge.Node1, edge.Node2-len(placements)
		assignments[placements[placementIndex]] = rooms[roomIndex].Number
	}
	return assignments, nil
}
