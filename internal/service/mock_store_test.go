package service

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/csko24143-droid/nust-room-search/internal/model"
	"github.com/csko24143-droid/nust-room-search/internal/repository"
)

// mockStore Repository 3 インターフェースを 1 つで満たすインメモリ実装
type mockStore struct {
	classrooms []model.Classroom
	entries    []model.ScheduleEntry

	listErr    error
	replaceErr error

	// Replace の呼び出し回数
	replaceCalls int
}

func newMockRepo(store *mockStore) *repository.Repository {
	return &repository.Repository{
		Classroom:     store,
		ScheduleEntry: store,
		Generation:    store,
	}
}

func (m *mockStore) List(_ context.Context, building string) ([]model.Classroom, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var rooms []model.Classroom
	for _, r := range m.classrooms {
		if building != "" && r.Building != building {
			continue
		}
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (m *mockStore) GetByName(_ context.Context, name string) (*model.Classroom, error) {
	for i := range m.classrooms {
		if m.classrooms[i].Name == name {
			return &m.classrooms[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStore) ListOccupiedNames(_ context.Context, day string, period int, terms []string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	active := make(map[string]bool, len(terms))
	for _, t := range terms {
		active[t] = true
	}
	seen := make(map[string]bool)
	var names []string
	for _, e := range m.entries {
		if e.Day != day || e.Period != period || !active[e.Term] {
			continue
		}
		if seen[e.ClassroomName] {
			continue
		}
		seen[e.ClassroomName] = true
		names = append(names, e.ClassroomName)
	}
	return names, nil
}

func (m *mockStore) ListByClassroom(_ context.Context, name string, terms []string) ([]model.ScheduleEntry, error) {
	active := make(map[string]bool, len(terms))
	for _, t := range terms {
		active[t] = true
	}
	var entries []model.ScheduleEntry
	for _, e := range m.entries {
		if e.ClassroomName == name && active[e.Term] {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Day != entries[j].Day {
			return entries[i].Day < entries[j].Day
		}
		return entries[i].Period < entries[j].Period
	})
	return entries, nil
}

func (m *mockStore) ListByTerms(_ context.Context, terms []string) ([]model.ScheduleEntry, error) {
	active := make(map[string]bool, len(terms))
	for _, t := range terms {
		active[t] = true
	}
	var entries []model.ScheduleEntry
	for _, e := range m.entries {
		if active[e.Term] {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockStore) Replace(_ context.Context, classrooms []model.Classroom, entries []model.ScheduleEntry) error {
	m.replaceCalls++
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.classrooms = classrooms
	m.entries = entries
	return nil
}
