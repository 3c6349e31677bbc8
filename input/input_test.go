package input

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeysAnyDirectional(t *testing.T) {
	assert.False(t, Keys{}.AnyDirectional())
	assert.False(t, Keys{Boost: true}.AnyDirectional(), "boost alone is not directional")
	assert.True(t, Keys{Forward: true}.AnyDirectional())
	assert.True(t, Keys{StrafeRight: true, Boost: true}.AnyDirectional())
}

func TestQueueDrainsExactlyOnce(t *testing.T) {
	var q Queue
	q.Push(EventToggleCameraMode)
	q.Push(EventToggleCameraMode)
	require.Equal(t, 2, q.Len())

	assert.Equal(t, []Event{EventToggleCameraMode, EventToggleCameraMode}, q.Drain())
	assert.Nil(t, q.Drain())
	assert.Zero(t, q.Len())
}

func TestStateEmitAndDrain(t *testing.T) {
	var s State
	s.SetKeys(Keys{Forward: true})
	s.Emit(EventToggleCameraMode)

	assert.True(t, s.Keys().Forward)
	assert.Equal(t, []Event{EventToggleCameraMode}, s.Drain())
	assert.Empty(t, s.Drain())
}

const sampleScript = `tick,toggle,forward,backward,left,right,boost,look_dx,look_dy
0,false,true,false,false,false,false,0,0
10,false,true,false,false,false,true,0,0
20,true,false,false,false,false,false,2.5,0
20,true,false,false,false,false,false,0,0
`

func TestReadScript(t *testing.T) {
	sc, err := ReadScript(strings.NewReader(sampleScript))
	require.NoError(t, err)
	assert.Equal(t, 4, sc.Len())
}

func TestScriptApplyHoldsKeyframes(t *testing.T) {
	sc, err := ReadScript(strings.NewReader(sampleScript))
	require.NoError(t, err)

	var s State
	sc.Apply(0, &s)
	assert.Equal(t, Keys{Forward: true}, s.Keys())

	sc.Apply(5, &s)
	assert.Equal(t, Keys{Forward: true}, s.Keys(), "keys persist between keyframes")
	assert.Empty(t, s.Drain())

	sc.Apply(10, &s)
	assert.Equal(t, Keys{Forward: true, Boost: true}, s.Keys())

	sc.Apply(20, &s)
	assert.Equal(t, Keys{}, s.Keys())
	assert.Equal(t, []Event{EventToggleCameraMode, EventToggleCameraMode}, s.Drain())
	assert.True(t, sc.Done())

	sc.Apply(21, &s)
	assert.Empty(t, s.Drain(), "toggles fire only on their own tick")
}

func TestScriptSkippedToggleDoesNotFire(t *testing.T) {
	sc := NewScript([]Keyframe{{Tick: 3, Toggle: true}})

	var s State
	sc.Apply(7, &s)
	assert.Empty(t, s.Drain())
}

func TestScriptBeforeFirstKeyframeIsIdle(t *testing.T) {
	sc := NewScript([]Keyframe{{Tick: 5, Keys: Keys{Forward: true}}})

	var s State
	s.SetKeys(Keys{Backward: true})
	sc.Apply(0, &s)
	assert.Equal(t, Keys{}, s.Keys())
}

func TestReadScriptRejectsBadRows(t *testing.T) {
	_, err := ReadScript(strings.NewReader("tick,forward\nabc,true\n"))
	assert.Error(t, err)
}
