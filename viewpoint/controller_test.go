package viewpoint

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/waddle/camera"
	"github.com/pthm-cable/waddle/config"
	"github.com/pthm-cable/waddle/input"
)

// fakeStrategy records calls and moves its pose a fixed step per update.
type fakeStrategy struct {
	name    string
	pose    camera.Pose
	step    mgl64.Vec3
	active  bool
	seeds   []*camera.Pose
	updates int
	log     *[]string
}

func newFake(name string, start mgl64.Vec3, log *[]string) *fakeStrategy {
	return &fakeStrategy{
		name: name,
		pose: camera.Pose{Position: start, Orientation: mgl64.QuatIdent()},
		log:  log,
	}
}

func (f *fakeStrategy) Activate(seed *camera.Pose) {
	f.active = true
	f.seeds = append(f.seeds, seed)
	if seed != nil {
		f.pose = *seed
	}
	*f.log = append(*f.log, f.name+".activate")
}

func (f *fakeStrategy) Deactivate() {
	f.active = false
	*f.log = append(*f.log, f.name+".deactivate")
}

func (f *fakeStrategy) Update(float64) {
	f.updates++
	f.pose.Position = f.pose.Position.Add(f.step)
}

func (f *fakeStrategy) Pose() camera.Pose {
	return f.pose
}

type recordingObserver struct {
	changes [][2]Mode
}

func (o *recordingObserver) ModeChanged(from, to Mode) {
	o.changes = append(o.changes, [2]Mode{from, to})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestModeStringAndParse(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("orbit")
	assert.ErrorIs(t, err, ErrUnknownMode)
	assert.False(t, Mode(0).Valid())
	assert.Equal(t, ModeFly, ModeThirdPerson.Next())
	assert.Equal(t, ModeThirdPerson, ModeFly.Next())
}

func TestNewActivatesThirdPerson(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{}, &log)
	fly := newFake("fly", mgl64.Vec3{}, &log)

	c := New(tp, fly, nil, WithLogger(quietLogger()))
	assert.Equal(t, ModeThirdPerson, c.Mode())
	assert.True(t, tp.active)
	assert.False(t, fly.active)
	assert.Equal(t, []string{"tp.activate"}, log)
}

func TestUpdateTicksBothPublishesActive(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{0, 5, 10}, &log)
	fly := newFake("fly", mgl64.Vec3{100, 0, 0}, &log)
	fly.step = mgl64.Vec3{1, 0, 0}

	c := New(tp, fly, nil, WithLogger(quietLogger()))
	c.Update(0.1)

	assert.Equal(t, 1, tp.updates)
	assert.Equal(t, 1, fly.updates, "inactive strategy is still ticked")
	assert.Equal(t, tp.pose, c.Pose())
}

func TestToggleSeedsFlyWithPublishedPose(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{0, 5, 10}, &log)
	fly := newFake("fly", mgl64.Vec3{100, 0, 0}, &log)

	c := New(tp, fly, nil, WithLogger(quietLogger()))
	c.Update(0.1)
	published := c.Pose()
	log = nil

	c.Toggle()
	assert.Equal(t, ModeFly, c.Mode())
	assert.Equal(t, []string{"tp.deactivate", "fly.activate"}, log)
	require.Len(t, fly.seeds, 1)
	require.NotNil(t, fly.seeds[0])
	assert.Equal(t, published, *fly.seeds[0])

	c.Update(0.1)
	assert.True(t, c.Pose().ApproxEqual(published, 1e-12), "hand-off keeps the view continuous")
}

func TestToggleBackDoesNotSeedThirdPerson(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{}, &log)
	fly := newFake("fly", mgl64.Vec3{}, &log)

	c := New(tp, fly, nil, WithLogger(quietLogger()))
	c.Toggle()
	log = nil
	c.Toggle()

	assert.Equal(t, ModeThirdPerson, c.Mode())
	assert.Equal(t, []string{"fly.deactivate", "tp.activate"}, log)
	require.Len(t, tp.seeds, 2)
	assert.Nil(t, tp.seeds[1])
	assert.Equal(t, 2, c.Switches())
}

func TestEventsDrainedOncePerUpdate(t *testing.T) {
	var log []string
	var in input.State
	tp := newFake("tp", mgl64.Vec3{}, &log)
	fly := newFake("fly", mgl64.Vec3{}, &log)
	c := New(tp, fly, &in, WithLogger(quietLogger()))

	in.Emit(input.EventToggleCameraMode)
	c.Update(0.1)
	assert.Equal(t, ModeFly, c.Mode())

	// No new event, no new toggle
	c.Update(0.1)
	assert.Equal(t, ModeFly, c.Mode())

	in.Emit(input.EventToggleCameraMode)
	in.Emit(input.EventToggleCameraMode)
	c.Update(0.1)
	assert.Equal(t, ModeFly, c.Mode(), "two events toggle twice")
	assert.Equal(t, 3, c.Switches())
}

func TestSetModePairsActivation(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{}, &log)
	fly := newFake("fly", mgl64.Vec3{}, &log)
	obs := &recordingObserver{}
	c := New(tp, fly, nil, WithObserver(obs), WithLogger(quietLogger()))
	log = nil

	require.NoError(t, c.SetMode(ModeThirdPerson))
	assert.Empty(t, log, "selecting the active mode is a no-op")

	require.NoError(t, c.SetMode(ModeFly))
	assert.Equal(t, []string{"tp.deactivate", "fly.activate"}, log)
	assert.True(t, fly.active)
	assert.False(t, tp.active)
	assert.Equal(t, [][2]Mode{{ModeThirdPerson, ModeFly}}, obs.changes)

	assert.ErrorIs(t, c.SetMode(Mode(9)), ErrUnknownMode)
	assert.Equal(t, ModeFly, c.Mode())
}

func TestZeroElapsedUpdatesKeepMode(t *testing.T) {
	var log []string
	tp := newFake("tp", mgl64.Vec3{1, 2, 3}, &log)
	fly := newFake("fly", mgl64.Vec3{}, &log)
	c := New(tp, fly, nil, WithLogger(quietLogger()))

	c.Update(0)
	first := c.Pose()
	c.Update(0)
	assert.Equal(t, ModeThirdPerson, c.Mode())
	assert.Equal(t, first, c.Pose())
}

func TestDoubleToggleRoundTripWithRealCameras(t *testing.T) {
	target := mgl64.Vec3{10, 0, 1}
	var in input.State

	tp := camera.NewThirdPerson(config.ThirdPersonConfig{
		Distance: 12, Phi: 0.5, MinPhi: 0.1, MaxPhi: 1.4, TargetY: 1.5, Smoothing: 8,
	}, func() mgl64.Vec3 { return target }, &in)
	fly := camera.NewFly(config.FlyConfig{Speed: 10, BoostMultiplier: 2}, &in)
	c := New(tp, fly, &in, WithLogger(quietLogger()))

	for i := 0; i < 10; i++ {
		c.Update(1.0 / 60)
	}
	before := c.Pose()

	in.Emit(input.EventToggleCameraMode)
	c.Update(1.0 / 60)
	assert.Equal(t, ModeFly, c.Mode())
	assert.True(t, c.Pose().ApproxEqual(before, 1e-9), "fly starts where third-person was")

	in.Emit(input.EventToggleCameraMode)
	c.Update(1.0 / 60)
	assert.Equal(t, ModeThirdPerson, c.Mode())
	assert.True(t, c.Pose().ApproxEqual(before, 1e-9), "round trip restores the published pose")
}

func TestFlyMovesOnlyWhileActive(t *testing.T) {
	target := mgl64.Vec3{}
	var in input.State
	tp := camera.NewThirdPerson(config.ThirdPersonConfig{Distance: 5, Phi: 0.3, MinPhi: 0, MaxPhi: 1}, func() mgl64.Vec3 { return target }, &in)
	fly := camera.NewFly(config.FlyConfig{Speed: 10}, &in)
	c := New(tp, fly, &in, WithLogger(quietLogger()))

	in.SetKeys(input.Keys{Forward: true})
	c.Update(0.1)
	flyBefore := fly.Pose()
	c.Update(0.1)
	assert.Equal(t, flyBefore, fly.Pose(), "inactive fly camera does not navigate")

	c.Toggle()
	start := fly.Pose().Position
	c.Update(0.1)
	assert.InDelta(t, 1.0, c.Pose().Position.Sub(start).Len(), 1e-9)
}
