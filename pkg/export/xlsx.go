package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const UtilizationSheet = "Utilization"

// WriteWorkbook writes one sheet per classroom (rows are time slots, columns are days) followed by a utilization sheet
func WriteWorkbook(w io.Writer, scheduler model.Scheduler) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	courses := lo.KeyBy(scheduler.Courses(), func(course model.Course) uint64 { return course.Id })
	professors := lo.KeyBy(scheduler.Professors(), func(professor model.Professor) uint64 { return professor.Id })

	classrooms := scheduler.Classrooms()
	sheets := SheetNames(classrooms)
	for i, classroom := range classrooms {
		sheet := sheets[i]
		if _, err := f.NewSheet(sheet); err != nil {
			return errors.Wrapf(err, "creating sheet for classroom %v", classroom.Number)
		}

		f.SetColWidth(sheet, "A", "A", 14)
		f.SetColWidth(sheet, "B", colName(len(model.Days)), 28)

		// Header row; the corner cell carries the classroom number since the sheet name may be altered
		f.SetCellValue(sheet, "A1", classroom.Number)
		for i, day := range model.Days {
			f.SetCellValue(sheet, cell(colName(i+1), 1), string(day))
		}
		f.SetCellStyle(sheet, "A1", cell(colName(len(model.Days)), 1), headerStyle)

		// Grid rows
		booked := lo.KeyBy(scheduler.GetClassroomSchedule(classroom.Number), func(lesson model.Lesson) [2]string {
			return [2]string{string(lesson.DayOfWeek), string(lesson.TimeSlot)}
		})
		for row, slot := range model.TimeSlots {
			f.SetCellValue(sheet, cell("A", row+2), string(slot))
			for i, day := range model.Days {
				text := "-"
				if lesson, ok := booked[[2]string{string(day), string(slot)}]; ok {
					text = describe(lesson, courses, professors)
				}
				f.SetCellValue(sheet, cell(colName(i+1), row+2), text)
			}
		}
	}

	//** Utilization sheet
	if _, err := f.NewSheet(UtilizationSheet); err != nil {
		return errors.Wrap(err, "creating utilization sheet")
	}
	f.SetCellValue(UtilizationSheet, "A1", "Classroom")
	f.SetCellValue(UtilizationSheet, "B1", "Utilization (%)")
	f.SetCellStyle(UtilizationSheet, "A1", "B1", headerStyle)
	for i, classroom := range scheduler.Classrooms() {
		f.SetCellValue(UtilizationSheet, cell("A", i+2), classroom.Number)
		f.SetCellValue(UtilizationSheet, cell("B", i+2), scheduler.GetClassroomUtilization(classroom.Number))
	}

	// Drop the default sheet once the workbook has others
	f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex(UtilizationSheet); err == nil {
		f.SetActiveSheet(index)
	}

	return errors.Wrap(f.Write(w), "writing workbook")
}

var sheetNameReplacer = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_")

// SheetNames returns the name of the sheet holding each classroom's weekly grid, in the same order.
// Excel compares sheet names case-insensitively, forbids some characters and caps their length, so a
// classroom whose "Room <number>" name breaks any of those rules gets a sanitized name suffixed with its position.
func SheetNames(classrooms []model.Classroom) []string {
	names := make([]string, len(classrooms))
	used := make(map[string]bool, len(classrooms))

	for i, classroom := range classrooms {
		name := "Room " + classroom.Number
		base := strings.TrimRight(sheetNameReplacer.Replace(name), "'")

		if base != name || utf8.RuneCountInString(name) > excelize.MaxSheetNameLength || used[strings.ToLower(name)] {
			for position := i + 1; ; position += len(classrooms) {
				suffix := fmt.Sprintf(" #%d", position)
				name = truncate(base, excelize.MaxSheetNameLength-len(suffix)) + suffix
				if !used[strings.ToLower(name)] {
					break
				}
			}
		}

		names[i] = name
		used[strings.ToLower(name)] = true
	}
	return names
}

func truncate(value string, runes int) string {
	if utf8.RuneCountInString(value) <= runes {
		return value
	}
	return strings.TrimRight(string([]rune(value)[:runes]), "'")
}

func describe(lesson model.Lesson, courses map[uint64]model.Course, professors map[uint64]model.Professor) string {
	courseName, professorName := fmt.Sprintf("course %v", lesson.CourseId), fmt.Sprintf("professor %v", lesson.ProfessorId)
	if course, ok := courses[lesson.CourseId]; ok {
		courseName = fmt.Sprintf("%v (%v)", course.Name, course.Type)
	}
	if professor, ok := professors[lesson.ProfessorId]; ok {
		professorName = professor.Name
	}
	return fmt.Sprintf("%v ~ %v", courseName, professorName)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
