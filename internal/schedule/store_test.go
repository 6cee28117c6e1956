package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "interventions.yaml"), nil)
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())
	assert.Empty(t, s.All())
}

func TestStoreAddAndRoundtrip(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())

	end := time.Date(2024, 3, 15, 11, 0, 0, 0, time.Local)
	added, err := s.Add(Intervention{
		Title:  "Remplacement chaudière",
		Start:  time.Date(2024, 3, 15, 9, 30, 0, 0, time.Local),
		End:    &end,
		Client: &Client{Name: "Dupont", FirstName: "Marie"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID, "an ID is assigned on add")
	assert.Equal(t, StatusPlanned, added.Status, "status defaults to planned")

	// A fresh store reading the same file sees the intervention.
	reloaded := NewStore(s.path, nil)
	require.NoError(t, reloaded.Load())

	all := reloaded.All()
	require.Len(t, all, 1)
	assert.Equal(t, added.ID, all[0].ID)
	assert.Equal(t, "Remplacement chaudière", all[0].Title)
	require.NotNil(t, all[0].Client)
	assert.Equal(t, "Marie Dupont", all[0].Client.DisplayName())
	require.NotNil(t, all[0].End)
	assert.True(t, all[0].End.Equal(end))
}

func TestStoreGetInterventionsWindowAndOrder(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())

	late := Intervention{ID: "late", Title: "b", Start: time.Date(2024, 3, 15, 16, 0, 0, 0, time.Local)}
	early := Intervention{ID: "early", Title: "a", Start: time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)}
	outside := Intervention{ID: "outside", Title: "c", Start: time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)}
	unscheduled := Intervention{ID: "unscheduled", Title: "d"}

	for _, iv := range []Intervention{late, early, outside, unscheduled} {
		_, err := s.Add(iv)
		require.NoError(t, err)
	}

	got, err := s.GetInterventions(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local),
	)
	require.NoError(t, err)

	require.Len(t, got, 2, "window excludes out-of-range and unscheduled")
	assert.Equal(t, "early", got[0].ID, "results sorted by start")
	assert.Equal(t, "late", got[1].ID)
}

func TestStoreReschedule(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())

	end := time.Date(2024, 3, 14, 11, 0, 0, 0, time.Local)
	added, err := s.Add(Intervention{
		Title: "Pose fenêtres",
		Start: time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local),
		End:   &end,
	})
	require.NoError(t, err)

	newStart := time.Date(2024, 3, 20, 9, 30, 0, 0, time.Local)
	require.NoError(t, s.Reschedule(added.ID, newStart))

	all := s.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].Start.Equal(newStart))
	require.NotNil(t, all[0].End)
	assert.True(t, all[0].End.Equal(time.Date(2024, 3, 20, 11, 0, 0, 0, time.Local)),
		"end shifts by the same delta so duration is kept")
}

func TestStoreRescheduleIdempotent(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())

	start := time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local)
	added, err := s.Add(Intervention{Title: "Devis toiture", Start: start})
	require.NoError(t, err)

	// Record the file state, reschedule to the same instant, and make
	// sure nothing was rewritten.
	before, err := os.ReadFile(s.path)
	require.NoError(t, err)

	require.NoError(t, s.Reschedule(added.ID, start))

	after, err := os.ReadFile(s.path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStoreRescheduleUnknownID(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())

	err := s.Reschedule("nope", time.Now())
	assert.Error(t, err)
}

func TestStoreSavePermissions(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Load())
	_, err := s.Add(Intervention{Title: "x", Start: time.Now()})
	require.NoError(t, err)

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
