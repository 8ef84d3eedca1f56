package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/limaJavier/scheduling/internal/config"
	"github.com/limaJavier/scheduling/internal/logger"
	"github.com/limaJavier/scheduling/pkg/export"
	"github.com/limaJavier/scheduling/pkg/model"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func main() {
	// Define arguments
	configPathPtr := flag.String("config", "", "Path to a YAML config file; if empty, ./config.yaml is used when present")
	filePathPtr := flag.String("file", "", "Path to the seed file (professors, classrooms, courses, lessons and placements)")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	formatPtr := flag.String("format", "", `Output format. Allowed values are: "json" (full report), "xlsx" (weekly grid per classroom) and "ics" (a professor's calendar)`)
	professorPtr := flag.Uint64("professor", 0, "Professor whose calendar is exported by the \"ics\" format")
	flag.Parse()

	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	// Flags override the config
	cfg.Input.File = lo.Ternary(*filePathPtr != "", *filePathPtr, cfg.Input.File)
	cfg.Output.File = lo.Ternary(*outFilePathPtr != "", *outFilePathPtr, cfg.Output.File)
	cfg.Output.Format = strings.ToLower(lo.Ternary(*formatPtr != "", *formatPtr, cfg.Output.Format))

	// Validate arguments
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	// Extract input
	input, err := model.InputFromJson(cfg.Input.File)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}

	// Build schedule
	scheduler := model.NewScheduler(zapLogger)
	report := input.Apply(scheduler)
	zapLogger.Info("input applied",
		zap.Int("lessons", len(scheduler.Lessons())),
		zap.Uint64s("rejectedProfessors", report.RejectedProfessors),
		zap.Strings("rejectedClassrooms", report.RejectedClassrooms),
		zap.Uint64s("rejectedCourses", report.RejectedCourses),
		zap.Ints("rejectedLessons", report.RejectedLessons),
		zap.String("placementError", report.PlacementError),
	)

	// Verify schedule correctness
	if !scheduler.Verify() {
		zapLogger.Error("schedule verification failed")
		os.Exit(15)
	}

	// Build output
	var output bytes.Buffer
	switch cfg.Output.Format {
	case "json":
		err = export.WriteJSON(&output, export.BuildReport(scheduler))
	case "xlsx":
		err = export.WriteWorkbook(&output, scheduler)
	case "ics":
		// Validate has already checked the calendar settings
		weekStart, _ := cfg.Calendar.Start()
		var calendar string
		calendar, err = export.ProfessorCalendar(scheduler, *professorPtr, weekStart)
		output.WriteString(calendar)
	}
	if err != nil {
		log.Fatalf("an error occurred while building the output: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if cfg.Output.File == "" {
		fmt.Print(output.String())
	} else {
		err := os.WriteFile(cfg.Output.File, output.Bytes(), 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}
