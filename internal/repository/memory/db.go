// Package memory is an in-process implementation of the repository interfaces.
// It backs local development (database.driver=memory) and the test suites.
package memory

import (
	"fitu/dashboard/internal/repository"
	"sort"
	"strconv"
	"sync"
	"time"
)

// DB holds every collection in maps guarded by one lock.
type DB struct {
	mutex sync.RWMutex
	seq   int

	students      table[*studentRecord]
	instructors   table[*instructorRecord]
	rosters       table[*rosterRecord]
	assignments   table[*assignmentRecord]
	performed     table[*performedRecord]
	announcements table[*announcementRecord]
}

// table keeps rows by id plus their insertion order.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) put(id string, row T) {
	if t.rows == nil {
		t.rows = make(map[string]T)
	}
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[T]) remove(id string) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// newestFirst returns rows matching keep, most recently inserted first.
func (t *table[T]) newestFirst(keep func(T) bool) []T {
	out := []T{}
	for i := len(t.order) - 1; i >= 0; i-- {
		row := t.rows[t.order[i]]
		if keep == nil || keep(row) {
			out = append(out, row)
		}
	}
	return out
}

// Open returns an empty database.
func Open() *DB {
	return &DB{}
}

// NewStore wires every repository to db.
func NewStore(db *DB) repository.Store {
	return repository.Store{
		Students:           NewStudentRepository(db),
		Instructors:        NewInstructorRepository(db),
		Rosters:            NewRosterRepository(db),
		Assignments:        NewAssignmentRepository(db),
		PerformedExercises: NewPerformedExerciseRepository(db),
		Announcements:      NewAnnouncementRepository(db),
	}
}

// nextID must be called with the write lock held.
func (db *DB) nextID() string {
	db.seq++
	return "mem-" + strconv.Itoa(db.seq)
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneInt(in *int) *int {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

// sortByTimeDesc orders items by the time key, newest first, keeping the
// incoming order for ties.
func sortByTimeDesc[T any](items []T, key func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]).After(key(items[j]))
	})
}
