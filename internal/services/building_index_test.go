package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/wayfinding-service/internal/catalog"
	"github.com/poofware/wayfinding-service/internal/extraction"
	"github.com/poofware/wayfinding-service/internal/models"
)

// fixtureExtractor serves per-floor data and fails floors listed in failing.
type fixtureExtractor struct {
	floors  map[string]*extraction.FloorData
	failing map[string]bool
	calls   atomic.Int32
}

func (f *fixtureExtractor) Extract(ctx context.Context, _ string, floorName string) (*extraction.FloorData, error) {
	f.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failing[floorName] {
		return nil, fmt.Errorf("cannot read %s", floorName)
	}
	return f.floors[floorName], nil
}

func descriptors(names ...string) []models.FloorDescriptor {
	out := make([]models.FloorDescriptor, 0, len(names))
	for _, n := range names {
		out = append(out, models.FloorDescriptor{Name: n, MapReference: "maps/" + n + ".pdf"})
	}
	return out
}

func newPorcelaenshavenIndex(t *testing.T) *BuildingIndex {
	t.Helper()
	ix := NewBuildingIndex(extraction.NewPlaceholderExtractor(), IndexOptions{})
	_, ok := ix.LoadFloors(context.Background(), "porcelaenshaven",
		descriptors("stue", "1_sal", "2_sal", "3_sal", "4_sal"))
	require.True(t, ok)
	return ix
}

func TestLoadAndSearchScenario(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue": {
			Rooms:     []models.Room{{ID: "PH-D1.01", X: 0.2, Y: 0.3}},
			Entrances: []models.Entrance{{X: 0.1, Y: 0.8, Label: "Hovedindgang"}},
		},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{})

	report, ok := ix.LoadFloors(context.Background(), "porcelaenshaven", descriptors("stue"))
	require.True(t, ok)
	assert.Equal(t, []string{"stue"}, report.FloorsLoaded)
	assert.Equal(t, 1, report.Stats.Rooms)

	res, ok := ix.SearchRoom("ph-d1.01")
	require.True(t, ok)
	assert.Equal(t, "stue", res.FloorName)
	assert.Equal(t, models.Room{ID: "PH-D1.01", X: 0.2, Y: 0.3}, res.Room)
	assert.Equal(t, "maps/stue.pdf", res.MapReference)

	e, ok := ix.GetNearestEntrance(0.2, 0.3)
	require.True(t, ok)
	assert.Equal(t, 0.1, e.X)
	assert.Equal(t, 0.8, e.Y)
}

func TestSearchRoomCaseAndWhitespaceInvariance(t *testing.T) {
	ix := newPorcelaenshavenIndex(t)

	for _, f := range ix.snapshot().Floors() {
		for _, r := range f.Rooms {
			for _, q := range []string{r.ID, strings.ToLower(r.ID), "  " + r.ID + "  ", "\t" + strings.ToLower(r.ID) + "\n"} {
				res, ok := ix.SearchRoom(q)
				require.True(t, ok, q)
				assert.Equal(t, r, res.Room, q)
				assert.Equal(t, f.Name, res.FloorName, q)
			}
		}
	}
}

func TestSearchRoomNotFound(t *testing.T) {
	ix := newPorcelaenshavenIndex(t)

	for _, q := range []string{"", "   ", "\t\n", "PH-D1", "PH-D1.01X", "A.9.99", "5_sal"} {
		res, ok := ix.SearchRoom(q)
		assert.False(t, ok, q)
		assert.Nil(t, res, q)
	}
}

func TestSearchRoomFirstMatchWins(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue":  {Rooms: []models.Room{{ID: "dup", X: 0.1, Y: 0.1}}},
		"1_sal": {Rooms: []models.Room{{ID: "DUP", X: 0.9, Y: 0.9}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{LoadConcurrency: 2})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal"))
	require.True(t, ok)

	res, ok := ix.SearchRoom("Dup")
	require.True(t, ok)
	assert.Equal(t, "stue", res.FloorName)
	assert.Equal(t, 0.1, res.Room.X)
}

func TestNothingLoaded(t *testing.T) {
	ix := NewBuildingIndex(extraction.NewPlaceholderExtractor(), IndexOptions{})

	_, ok := ix.SearchRoom("ANY")
	assert.False(t, ok)

	_, ok = ix.GetNearestEntrance(0, 0)
	assert.False(t, ok)

	_, ok = ix.GetMapReference("stue")
	assert.False(t, ok)

	assert.Equal(t, "", ix.CurrentBuilding())
	assert.Nil(t, ix.Building())
	assert.Empty(t, ix.Floors())
}

func TestLoadFloorsEmptyDescriptors(t *testing.T) {
	ix := newPorcelaenshavenIndex(t)

	report, ok := ix.LoadFloors(context.Background(), "solbjerg", nil)
	assert.False(t, ok)
	assert.Equal(t, 0, report.FloorsRequested)

	// the previous building is gone as well
	_, found := ix.SearchRoom("PH-D1.01")
	assert.False(t, found)
	assert.Empty(t, ix.Floors())
	assert.Equal(t, "", ix.CurrentBuilding())
}

func TestLoadFloorsReplacesPreviousBuilding(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"a_stue": {Rooms: []models.Room{{ID: "ONLY-A", X: 0.5, Y: 0.5}, {ID: "SHARED", X: 0.1, Y: 0.1}}},
		"b_stue": {Rooms: []models.Room{{ID: "ONLY-B", X: 0.5, Y: 0.5}, {ID: "SHARED", X: 0.9, Y: 0.9}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{})

	_, ok := ix.LoadFloors(context.Background(), "a", descriptors("a_stue"))
	require.True(t, ok)
	_, ok = ix.LoadFloors(context.Background(), "b", descriptors("b_stue"))
	require.True(t, ok)

	_, found := ix.SearchRoom("ONLY-A")
	assert.False(t, found)

	res, found := ix.SearchRoom("shared")
	require.True(t, found)
	assert.Equal(t, "b_stue", res.FloorName)
	assert.Equal(t, "b", ix.CurrentBuilding())

	_, found = ix.GetMapReference("a_stue")
	assert.False(t, found)
}

func TestLoadFloorsPartialFailure(t *testing.T) {
	ex := &fixtureExtractor{
		floors: map[string]*extraction.FloorData{
			"stue":  {Rooms: []models.Room{{ID: "A.0.01", X: 0.3, Y: 0.5}}},
			"2_sal": {Rooms: []models.Room{{ID: "A.2.01", X: 0.3, Y: 0.5}}},
		},
		failing: map[string]bool{"1_sal": true},
	}

	t.Run("Lenient", func(t *testing.T) {
		ix := NewBuildingIndex(ex, IndexOptions{})
		report, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal", "2_sal"))
		require.True(t, ok)
		assert.Equal(t, []string{"stue", "2_sal"}, report.FloorsLoaded)
		assert.Equal(t, []string{"1_sal"}, report.FloorsFailed)

		_, found := ix.SearchRoom("A.2.01")
		assert.True(t, found)
		_, found = ix.GetMapReference("1_sal")
		assert.False(t, found)
	})

	t.Run("Strict", func(t *testing.T) {
		ix := NewBuildingIndex(ex, IndexOptions{StrictFloorLoading: true, LoadConcurrency: 1})
		report, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal", "2_sal"))
		assert.False(t, ok)
		assert.Contains(t, report.FloorsFailed, "1_sal")

		_, found := ix.SearchRoom("A.0.01")
		assert.False(t, found)
		assert.Equal(t, "", ix.CurrentBuilding())
	})
}

func TestLoadFloorsAllFail(t *testing.T) {
	ex := &fixtureExtractor{failing: map[string]bool{"stue": true, "1_sal": true}}
	ix := NewBuildingIndex(ex, IndexOptions{})

	report, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal"))
	assert.False(t, ok)
	assert.Empty(t, report.FloorsLoaded)
	assert.Len(t, report.FloorsFailed, 2)
}

func TestLoadFloorsUnnamedDescriptor(t *testing.T) {
	ix := NewBuildingIndex(extraction.NewPlaceholderExtractor(), IndexOptions{})
	report, ok := ix.LoadFloors(context.Background(), "b", []models.FloorDescriptor{
		{Name: "  ", MapReference: "x.pdf"},
		{Name: "stue", MapReference: "stue.pdf"},
	})
	require.True(t, ok)
	assert.Equal(t, []string{"stue"}, report.FloorsLoaded)
	assert.Equal(t, []string{"  "}, report.FloorsFailed)
}

func TestLoadFloorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ix := NewBuildingIndex(extraction.NewPlaceholderExtractor(), IndexOptions{})
	_, ok := ix.LoadFloors(ctx, "porcelaenshaven", descriptors("stue", "1_sal"))
	assert.False(t, ok)
}

func TestLoadFloorsCountsCoordinateIssues(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue": {
			Rooms:     []models.Room{{ID: "A", X: 1.5, Y: 0.5}, {ID: "B", X: 0.5, Y: 0.5}},
			Entrances: []models.Entrance{{X: -1, Y: 0.5, Label: "Indgang"}},
		},
	}}

	ix := NewBuildingIndex(ex, IndexOptions{CoordinatePolicy: catalog.PolicyClamp})
	report, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue"))
	require.True(t, ok)
	assert.Equal(t, 2, report.Stats.Clamped)
	res, _ := ix.SearchRoom("A")
	assert.Equal(t, 1.0, res.Room.X)

	ix = NewBuildingIndex(ex, IndexOptions{CoordinatePolicy: catalog.PolicyReject})
	report, ok = ix.LoadFloors(context.Background(), "b", descriptors("stue"))
	require.True(t, ok)
	assert.Equal(t, 2, report.Stats.Rejected)
	_, found := ix.SearchRoom("A")
	assert.False(t, found)
	_, found = ix.GetNearestEntrance(0.5, 0.5)
	assert.False(t, found)
}

func TestGetNearestEntrancePrefersGroundFloor(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue":  {Entrances: []models.Entrance{{X: 0.1, Y: 0.8, Label: "Hovedindgang"}}},
		"1_sal": {Entrances: []models.Entrance{{X: 0.0, Y: 0.0, Label: "Brandtrappe"}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal"))
	require.True(t, ok)

	// 1_sal's entrance is geometrically closer to (0.05, 0.05)
	e, ok := ix.GetNearestEntrance(0.05, 0.05)
	require.True(t, ok)
	assert.Equal(t, "Hovedindgang", e.Label)

	e, ok = ix.GetNearestEntrance(0.15, 0.8)
	require.True(t, ok)
	assert.Equal(t, "Hovedindgang", e.Label)
}

func TestGetNearestEntranceFallsBackToAllFloors(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue":  {Rooms: []models.Room{{ID: "R", X: 0.5, Y: 0.5}}},
		"1_sal": {Entrances: []models.Entrance{{X: 0.9, Y: 0.9, Label: "far"}}},
		"2_sal": {Entrances: []models.Entrance{{X: 0.4, Y: 0.4, Label: "near"}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "1_sal", "2_sal"))
	require.True(t, ok)

	m, ok := ix.NearestEntrance(0.5, 0.5)
	require.True(t, ok)
	assert.Equal(t, "near", m.Entrance.Label)
	assert.Equal(t, "2_sal", m.FloorName)
}

func TestGetNearestEntranceTieGoesToFirstLoaded(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue": {Entrances: []models.Entrance{
			{X: 0.4, Y: 0.5, Label: "west"},
			{X: 0.6, Y: 0.5, Label: "east"},
		}},
		"ground_b": {Entrances: []models.Entrance{{X: 0.5, Y: 0.4, Label: "north"}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{LoadConcurrency: 2})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "ground_b"))
	require.True(t, ok)

	e, ok := ix.GetNearestEntrance(0.5, 0.5)
	require.True(t, ok)
	assert.Equal(t, "west", e.Label)
}

func TestGetNearestEntranceIsMinimum(t *testing.T) {
	entrances := []models.Entrance{
		{X: 0.1, Y: 0.1, Label: "a"},
		{X: 0.9, Y: 0.2, Label: "b"},
		{X: 0.3, Y: 0.7, Label: "c"},
		{X: 0.6, Y: 0.95, Label: "d"},
	}
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{"0": {Entrances: entrances}}}
	ix := NewBuildingIndex(ex, IndexOptions{})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("0"))
	require.True(t, ok)

	points := [][2]float64{{0, 0}, {1, 0}, {0.35, 0.65}, {0.7, 1}, {0.5, 0.5}}
	want := []string{"a", "b", "c", "d", "c"}
	for i, p := range points {
		e, ok := ix.GetNearestEntrance(p[0], p[1])
		require.True(t, ok)
		assert.Equal(t, want[i], e.Label, "point %v", p)
	}
}

func TestCustomGroundFloorPolicy(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{
		"stue": {Entrances: []models.Entrance{{X: 0.0, Y: 0.0, Label: "stue"}}},
		"EG":   {Entrances: []models.Entrance{{X: 1.0, Y: 1.0, Label: "erdgeschoss"}}},
	}}
	ix := NewBuildingIndex(ex, IndexOptions{GroundFloor: GroundFloorPolicy{Names: []string{"EG"}}})
	_, ok := ix.LoadFloors(context.Background(), "b", descriptors("stue", "EG"))
	require.True(t, ok)

	e, ok := ix.GetNearestEntrance(0, 0)
	require.True(t, ok)
	assert.Equal(t, "erdgeschoss", e.Label)
}

func TestLocateRoom(t *testing.T) {
	ix := newPorcelaenshavenIndex(t)

	loc, ok := ix.LocateRoom(" a.1.01 ")
	require.True(t, ok)
	assert.Equal(t, "1_sal", loc.FloorName)
	require.NotNil(t, loc.NearestEntrance)
	assert.Equal(t, "stue", loc.NearestEntrance.FloorName)
	assert.Equal(t, "Hovedindgang", loc.NearestEntrance.Entrance.Label)

	_, ok = ix.LocateRoom("nope")
	assert.False(t, ok)
}

func TestFloorsAndMapReference(t *testing.T) {
	ix := newPorcelaenshavenIndex(t)

	ref, ok := ix.GetMapReference("2_sal")
	require.True(t, ok)
	assert.Equal(t, "maps/2_sal.pdf", ref)

	floors := ix.Floors()
	require.Len(t, floors, 5)
	assert.Equal(t, FloorSummary{Name: "stue", MapReference: "maps/stue.pdf", Rooms: 5, Entrances: 2}, floors[0])
	assert.Equal(t, "4_sal", floors[4].Name)

	name, current := ix.CurrentFloors()
	assert.Equal(t, "porcelaenshaven", name)
	assert.Equal(t, floors, current)

	b := ix.Building()
	require.NotNil(t, b)
	assert.Equal(t, "porcelaenshaven", b.Name)
	assert.Equal(t, []string{"stue", "1_sal", "2_sal", "3_sal", "4_sal"}, b.FloorOrder)
}

func TestConcurrentSearchDuringReload(t *testing.T) {
	ex := &fixtureExtractor{floors: map[string]*extraction.FloorData{}}
	var names []string
	for i := 0; i < 6; i++ {
		a, b := fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i)
		ex.floors[a] = &extraction.FloorData{Rooms: []models.Room{{ID: "A-" + a, X: 0.5, Y: 0.5}}}
		ex.floors[b] = &extraction.FloorData{Rooms: []models.Room{{ID: "B-" + b, X: 0.5, Y: 0.5}}}
		names = append(names, a)
	}
	aFloors := descriptors(names...)
	bFloors := make([]models.FloorDescriptor, len(aFloors))
	for i := range aFloors {
		bFloors[i] = models.FloorDescriptor{Name: "b" + aFloors[i].Name[1:], MapReference: "b.pdf"}
	}

	ix := NewBuildingIndex(ex, IndexOptions{LoadConcurrency: 3})
	ctx := context.Background()

	var mixed, mismatched atomic.Bool
	stop := make(chan struct{})
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				var hasA, hasB bool
				for _, f := range ix.Floors() {
					hasA = hasA || strings.HasPrefix(f.Name, "a")
					hasB = hasB || strings.HasPrefix(f.Name, "b")
				}
				if hasA && hasB {
					mixed.Store(true)
				}
				if name, floors := ix.CurrentFloors(); len(floors) > 0 && !strings.HasPrefix(floors[0].Name, name) {
					mismatched.Store(true)
				}
			}
		}()
	}

	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			ix.LoadFloors(ctx, "a", aFloors)
		} else {
			ix.LoadFloors(ctx, "b", bFloors)
		}
	}
	close(stop)
	wg.Wait()

	assert.False(t, mixed.Load(), "a reader observed floors from two buildings")
	assert.False(t, mismatched.Load(), "a reader observed one building's name with another's floors")
}

func TestExtractorReceivesCancellation(t *testing.T) {
	started := make(chan struct{})
	ex := extraction.ExtractorFunc(func(ctx context.Context, _ string, floor string) (*extraction.FloorData, error) {
		if floor == "slow" {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &extraction.FloorData{}, nil
	})
	ix := NewBuildingIndex(ex, IndexOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	report, ok := ix.LoadFloors(ctx, "b", descriptors("stue", "slow"))
	require.True(t, ok)
	assert.Equal(t, []string{"slow"}, report.FloorsFailed)
	assert.True(t, errors.Is(ctx.Err(), context.Canceled))
}
