package model

import (
	"math"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

func (scheduler *standardScheduler) FindAvailableClassrooms(slot TimeSlot, day DayOfWeek) []string {
	occupied := lo.FilterMap(scheduler.store.schedule, func(lesson Lesson, _ int) (string, bool) {
		return lesson.ClassroomNumber, lesson.DayOfWeek == day && lesson.TimeSlot == slot
	})

	return lo.FilterMap(scheduler.store.classrooms, func(classroom Classroom, _ int) (string, bool) {
		return classroom.Number, !lo.Contains(occupied, classroom.Number)
	})
}

func (scheduler *standardScheduler) GetProfessorSchedule(professorId uint64) []Lesson {
	return lo.Filter(scheduler.store.schedule, func(lesson Lesson, _ int) bool { return lesson.ProfessorId == professorId })
}

func (scheduler *standardScheduler) GetCourseSchedule(courseId uint64) []Lesson {
	return lo.Filter(scheduler.store.schedule, func(lesson Lesson, _ int) bool { return lesson.CourseId == courseId })
}

func (scheduler *standardScheduler) GetClassroomSchedule(classroomNumber string) []Lesson {
	return lo.Filter(scheduler.store.schedule, func(lesson Lesson, _ int) bool { return lesson.ClassroomNumber == classroomNumber })
}

// GetClassroomUtilization returns the share of the weekly grid the classroom is booked for, as a percentage rounded to two decimals.
// Nothing caps the result at 100.
func (scheduler *standardScheduler) GetClassroomUtilization(classroomNumber string) float64 {
	if _, ok := scheduler.store.classroom(classroomNumber); !ok {
		scheduler.logger.Warn("cannot compute utilization", zap.String("classroom", classroomNumber), zap.Error(ErrUnknownClassroom))
		return 0
	}

	booked := lo.CountBy(scheduler.store.schedule, func(lesson Lesson) bool { return lesson.ClassroomNumber == classroomNumber })
	utilization := float64(booked) / float64(scheduler.indexer.Slots()) * 100
	return math.Round(utilization*100) / 100
}

func (scheduler *standardScheduler) GetMostPopularCourseType() CourseType {
	counts := make(map[CourseType]int)
	for _, lesson := range scheduler.store.schedule {
		// Lessons whose course cannot be found are not counted
		if course, ok := scheduler.store.course(lesson.CourseId); ok {
			counts[course.Type]++
		}
	}

	maxCount, mostPopular := 0, Lecture
	for _, courseType := range CourseTypes {
		if counts[courseType] > maxCount {
			maxCount, mostPopular = counts[courseType], courseType
		}
	}
	return mostPopular
}
