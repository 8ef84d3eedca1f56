package model

import (
	"log"

	"github.com/samber/lo"
)

// slotIndexer gives a unique index to every (day, time slot) cell of the weekly grid and vice versa
type slotIndexer interface {
	// Returns the unique index of the cell
	Index(day DayOfWeek, slot TimeSlot) uint64
	// Returns the cell addressed by index
	Attributes(index uint64) (day DayOfWeek, slot TimeSlot)
	// Returns the number of cells in the weekly grid
	Slots() uint64
}

func newSlotIndexer(days []DayOfWeek, slots []TimeSlot) slotIndexer {
	return &slotIndexerImplementation{
		days:  days,
		slots: slots,
	}
}

type slotIndexerImplementation struct {
	days  []DayOfWeek
	slots []TimeSlot
}

func (indexer *slotIndexerImplementation) Index(day DayOfWeek, slot TimeSlot) uint64 {
	return uint64(indexOf(indexer.slots, slot)) + uint64(len(indexer.slots))*uint64(indexOf(indexer.days, day))
}

func (indexer *slotIndexerImplementation) Attributes(index uint64) (DayOfWeek, TimeSlot) {
	slot := index % uint64(len(indexer.slots))
	day := index / uint64(len(indexer.slots))
	return indexer.days[day], indexer.slots[slot]
}

func (indexer *slotIndexerImplementation) Slots() uint64 {
	return uint64(len(indexer.days) * len(indexer.slots))
}

func indexOf[T comparable](values []T, value T) int {
	index := lo.IndexOf(values, value)
	if index == -1 {
		log.Panicf("%v is not part of the weekly grid", value)
	}
	return index
}
