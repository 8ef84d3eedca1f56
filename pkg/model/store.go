package model

import (
	"slices"

	"github.com/samber/lo"
)

// entityStore owns the collections of a single scheduler. Every collection keeps insertion order
type entityStore struct {
	professors []Professor
	classrooms []Classroom
	courses    []Course
	schedule   []Lesson
	lessonId   uint64 // Next id to be handed out
}

func newEntityStore() *entityStore {
	return &entityStore{
		professors: make([]Professor, 0),
		classrooms: make([]Classroom, 0),
		courses:    make([]Course, 0),
		schedule:   make([]Lesson, 0),
		lessonId:   1,
	}
}

func (store *entityStore) addProfessor(professor Professor) bool {
	if _, ok := store.professor(professor.Id); ok {
		return false
	}
	store.professors = append(store.professors, professor)
	return true
}

func (store *entityStore) addClassroom(classroom Classroom) bool {
	if _, ok := store.classroom(classroom.Number); ok {
		return false
	}
	store.classrooms = append(store.classrooms, classroom)
	return true
}

func (store *entityStore) addCourse(course Course) bool {
	if _, ok := store.course(course.Id); ok {
		return false
	}
	store.courses = append(store.courses, course)
	return true
}

// nextLessonId returns the current counter and advances it, so every call yields a new id
func (store *entityStore) nextLessonId() uint64 {
	id := store.lessonId
	store.lessonId++
	return id
}

func (store *entityStore) professor(id uint64) (Professor, bool) {
	return lo.Find(store.professors, func(professor Professor) bool { return professor.Id == id })
}

func (store *entityStore) classroom(number string) (Classroom, bool) {
	return lo.Find(store.classrooms, func(classroom Classroom) bool { return classroom.Number == number })
}

func (store *entityStore) course(id uint64) (Course, bool) {
	return lo.Find(store.courses, func(course Course) bool { return course.Id == id })
}

// lessonIndex returns the position of the lesson in the schedule or -1 if it is absent
func (store *entityStore) lessonIndex(id uint64) int {
	_, index, _ := lo.FindIndexOf(store.schedule, func(lesson Lesson) bool { return lesson.Id == id })
	return index
}

func (store *entityStore) appendLesson(lesson Lesson) {
	store.schedule = append(store.schedule, lesson)
}

func (store *entityStore) replaceLesson(index int, lesson Lesson) {
	store.schedule[index] = lesson
}

func (store *entityStore) removeLesson(index int) {
	store.schedule = slices.Delete(store.schedule, index, index+1)
}
