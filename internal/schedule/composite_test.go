package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempICS(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.ics")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// fakeSource is a Source with canned interventions or a canned error.
type fakeSource struct {
	interventions []Intervention
	err           error
}

func (f *fakeSource) GetInterventions(start, end time.Time) ([]Intervention, error) {
	return f.interventions, f.err
}
func (f *fakeSource) Watch() (<-chan ChangeEvent, error) { return nil, nil }
func (f *fakeSource) StopWatching() error                { return nil }

func TestCompositeDeduplicatesByID(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	a := &fakeSource{interventions: []Intervention{
		{ID: "shared", Title: "From A", Start: start},
		{ID: "only-a", Title: "A", Start: start},
	}}
	b := &fakeSource{interventions: []Intervention{
		{ID: "shared", Title: "From B", Start: start},
		{ID: "only-b", Title: "B", Start: start},
	}}

	c := NewCompositeSource(a, b)
	got, err := c.GetInterventions(start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, got, 3)
	byID := make(map[string]Intervention)
	for _, iv := range got {
		byID[iv.ID] = iv
	}
	assert.Equal(t, "From A", byID["shared"].Title, "first source wins on duplicate IDs")
}

func TestCompositeSkipsFailingSource(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)
	broken := &fakeSource{err: errors.New("feed unreachable")}
	ok := &fakeSource{interventions: []Intervention{{ID: "x", Title: "X", Start: start}}}

	c := NewCompositeSource(broken, ok)
	got, err := c.GetInterventions(start.AddDate(0, 0, -1), start.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}
