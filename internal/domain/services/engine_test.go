package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftex-sim/swiftex/internal/domain/services"
	"github.com/swiftex-sim/swiftex/internal/domain/vo"
)

// testClock lets a test advance simulated time without sleeping.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestEngine(t *testing.T) (*services.Engine, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	engine, err := services.NewEngine(clock.Now)
	require.NoError(t, err)

	return engine, clock
}

// Scenario 1: basic delivery (spec §8.1).
func TestScenario_BasicDelivery(t *testing.T) {
	engine, clock := newTestEngine(t)

	breakdown, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityLow), false)
	require.NoError(t, err)
	assert.Equal(t, 375, breakdown.TotalDistance)
	assert.Equal(t, 38*time.Second, breakdown.EstimatedDuration)
	assert.InDelta(t, 2125, breakdown.Cost, 0.001)

	moved, err := engine.ProcessPickupQueue()
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	report := engine.Dispatch()
	assert.Equal(t, 1, report.Dispatched)
	assert.Equal(t, 0, report.Deferred)

	snap, err := engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "Bike-1", snap.AssignedRider)
	assert.Equal(t, "In Transit", snap.Status)

	clock.Advance(38 * time.Second)
	engine.Tick()

	snap, err = engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "Delivered", snap.Status)

	fleet := engine.ViewFleet()
	assert.Equal(t, vo.RiderIdle, fleet[0].State)
	assert.InDelta(t, 0, fleet[0].CurrentLoad, 0.001)

	archived := engine.ArchiveInOrder()
	require.Len(t, archived, 1)
	assert.Equal(t, 1, archived[0].ID)
}

// Scenario 2: priority ordering (spec §8.2).
func TestScenario_PriorityOrdering(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(10, 1, 2, 5, int(vo.PriorityLow), false)
	require.NoError(t, err)
	_, err = engine.RegisterParcel(11, 1, 2, 5, int(vo.PriorityHigh), false)
	require.NoError(t, err)
	_, err = engine.RegisterParcel(12, 1, 2, 20, int(vo.PriorityHigh), false)
	require.NoError(t, err)

	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)

	report := engine.Dispatch()
	assert.Equal(t, 3, report.Dispatched)

	transit, err := engine.List(services.ListTransit)
	require.NoError(t, err)
	require.Len(t, transit, 3)

	order := make([]int, len(transit))
	for i, s := range transit {
		order[i] = s.ID
	}
	assert.Equal(t, []int{12, 11, 10}, order)
}

// Scenario 3: capacity deferral (spec §8.3). Fleet capacity totals
// 50+50+200+200+1000 = 1500 kg, but the dispatcher assigns one rider per
// parcel (spec §4.4), so a parcel defers once no single remaining rider
// can carry it — not merely once the fleet's summed capacity is exceeded.
func TestScenario_CapacityDeferral(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 1000, int(vo.PriorityMed), false) // -> Truck
	require.NoError(t, err)
	_, err = engine.RegisterParcel(2, 1, 2, 200, int(vo.PriorityMed), false) // -> Van-1
	require.NoError(t, err)
	_, err = engine.RegisterParcel(3, 1, 2, 200, int(vo.PriorityMed), false) // -> Van-2
	require.NoError(t, err)
	_, err = engine.RegisterParcel(4, 1, 2, 60, int(vo.PriorityMed), false) // fits no remaining rider
	require.NoError(t, err)

	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)

	report := engine.Dispatch()
	assert.Equal(t, 3, report.Dispatched)
	assert.Equal(t, 1, report.Deferred)

	warehouse, err := engine.List(services.ListWarehouse)
	require.NoError(t, err)
	require.Len(t, warehouse, 1)
	assert.Equal(t, 4, warehouse[0].ID)
}

// Scenario 4: block-induced failure (spec §8.4).
func TestScenario_BlockInducedFailure(t *testing.T) {
	engine, clock := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityMed), false)
	require.NoError(t, err)
	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)
	engine.Dispatch()

	require.NoError(t, engine.SetRoadStatus(1, 2, vo.RoadBlocked))

	snap, err := engine.Track(1)
	require.NoError(t, err)
	assert.True(t, snap.WillFailOnPath)

	clock.Advance(time.Duration(float64(snap.EstimatedDuration) * 0.25))
	engine.Tick()

	snap, err = engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "Lahore Warehouse", snap.Status)
}

// Scenario 5: missing detection (spec §8.5).
func TestScenario_MissingDetection(t *testing.T) {
	engine, clock := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityMed), false)
	require.NoError(t, err)
	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)
	engine.Dispatch()

	clock.Advance(301 * time.Second)
	engine.Tick()

	snap, err := engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "MISSING", snap.Status)

	missing := engine.MissingReport()
	require.Len(t, missing, 1)
	assert.Equal(t, 1, missing[0].ID)

	transit, err := engine.List(services.ListTransit)
	require.NoError(t, err)
	assert.Empty(t, transit)
}

// Scenario 6: undo reverses dispatch (spec §8.6).
func TestScenario_UndoReversesDispatch(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityLow), false)
	require.NoError(t, err)
	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)
	engine.Dispatch()

	fleetBefore := engine.ViewFleet()
	assert.InDelta(t, 10, fleetBefore[0].CurrentLoad, 0.001)

	desc, err := engine.UndoLast()
	require.NoError(t, err)
	assert.Contains(t, desc, "parcel 1")

	fleetAfter := engine.ViewFleet()
	assert.InDelta(t, 0, fleetAfter[0].CurrentLoad, 0.001)
	assert.Equal(t, vo.RiderIdle, fleetAfter[0].State)

	warehouse, err := engine.List(services.ListWarehouse)
	require.NoError(t, err)
	require.Len(t, warehouse, 1)

	report := engine.Dispatch()
	assert.Equal(t, 1, report.Dispatched)

	snap, err := engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "Bike-1", snap.AssignedRider)
}

func TestUndoLast_EmptyStack(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.UndoLast()

	assert.ErrorIs(t, err, services.ErrUndoStackEmpty)
}

func TestRegisterParcel_DuplicateID(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityLow), false)
	require.NoError(t, err)

	_, err = engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityLow), false)
	assert.ErrorIs(t, err, services.ErrDuplicateParcelID)
}

func TestRegisterParcel_SameSourceAndDest(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 1, 10, int(vo.PriorityLow), false)
	assert.Error(t, err)
}

func TestResetDay_ClearsRiderLoadsOnly(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.RegisterParcel(1, 1, 2, 10, int(vo.PriorityLow), false)
	require.NoError(t, err)
	_, err = engine.ProcessPickupQueue()
	require.NoError(t, err)
	engine.Dispatch()

	engine.ResetDay()

	fleet := engine.ViewFleet()
	assert.InDelta(t, 0, fleet[0].CurrentLoad, 0.001)
	assert.Equal(t, vo.RiderIdle, fleet[0].State)

	snap, err := engine.Track(1)
	require.NoError(t, err)
	assert.Equal(t, "In Transit", snap.Status)
}
