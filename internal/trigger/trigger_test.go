package trigger

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idavey/marginalia/internal/kv"
	"github.com/idavey/marginalia/internal/note"
	"github.com/idavey/marginalia/internal/segment"
)

func newController(t *testing.T, strategy Strategy) (*Controller, *note.Store) {
	t.Helper()
	store := note.NewStore(kv.NewMemory(), zerolog.Nop())
	return New(NewPolicy(strategy), store, zerolog.Nop()), store
}

func keyEvent(terminator bool) Event {
	return Event{Kind: EventKeyPressed, Terminator: terminator}
}

func contentEvent() Event {
	return Event{Kind: EventContentChanged}
}

func TestDoubleTerminatorFiresOnceOnAdjacentTerminators(t *testing.T) {
	t.Parallel()

	c, store := newController(t, StrategyDoubleTerminator)
	paras := segment.Split("I feel stuck today.\n\n")

	_, fired := c.Observe(keyEvent(true), paras)
	assert.False(t, fired, "first terminator alone must not fire")

	req, fired := c.Observe(keyEvent(true), paras)
	require.True(t, fired)
	assert.Equal(t, 0, req.Index)
	assert.Equal(t, "I feel stuck today.", req.Text)

	rec, ok := store.Get(0)
	require.True(t, ok)
	assert.Equal(t, note.StatusPending, rec.Status)

	// A third terminator finds the index occupied and stays quiet. Two
	// more adjacent terminators re-arm the FSM but the gate holds.
	_, fired = c.Observe(keyEvent(true), paras)
	assert.False(t, fired)
	_, fired = c.Observe(keyEvent(true), paras)
	assert.False(t, fired)
}

func TestDoubleTerminatorResetOnInterveningInput(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, StrategyDoubleTerminator)
	paras := segment.Split("a perfectly long paragraph\n\n")

	_, fired := c.Observe(keyEvent(true), paras)
	assert.False(t, fired)
	_, fired = c.Observe(keyEvent(false), paras)
	assert.False(t, fired, "plain keystroke must reset the state machine")
	_, fired = c.Observe(keyEvent(true), paras)
	assert.False(t, fired, "terminator after reset is a first terminator again")
}

func TestCountIncreaseTargetsSecondToLast(t *testing.T) {
	t.Parallel()

	c, store := newController(t, StrategyCountIncrease)

	one := segment.Split("first paragraph of writing")
	_, fired := c.Observe(contentEvent(), one)
	assert.False(t, fired, "a single paragraph means nothing is completed yet")

	two := segment.Split("first paragraph of writing\n\nsecond one begins")
	req, fired := c.Observe(contentEvent(), two)
	require.True(t, fired)
	assert.Equal(t, 0, req.Index)

	_, ok := store.Get(0)
	assert.True(t, ok)

	// Same count again: no growth, no fire.
	_, fired = c.Observe(contentEvent(), two)
	assert.False(t, fired)
}

func TestCountIncreaseNoDuplicateForSameGrowth(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, StrategyCountIncrease)
	two := segment.Split("first paragraph of writing\n\nsecond paragraph grows here")

	_, fired := c.Observe(contentEvent(), two)
	require.True(t, fired)

	three := segment.Split("first paragraph of writing\n\nsecond paragraph grows here\n\nthird")
	req, fired := c.Observe(contentEvent(), three)
	require.True(t, fired)
	assert.Equal(t, 1, req.Index, "each growth targets its own paragraph exactly once")
}

func TestEligibilityFloorBoundary(t *testing.T) {
	t.Parallel()

	tooShort := strings.Repeat("a", 9)
	longEnough := strings.Repeat("a", 10)

	c, _ := newController(t, StrategyDoubleTerminator)
	paras := segment.Split(tooShort + "\n\n")
	c.Observe(keyEvent(true), paras)
	_, fired := c.Observe(keyEvent(true), paras)
	assert.False(t, fired, "9 trimmed characters must not trigger")

	c2, _ := newController(t, StrategyDoubleTerminator)
	paras = segment.Split(longEnough + "\n\n")
	c2.Observe(keyEvent(true), paras)
	req, fired := c2.Observe(keyEvent(true), paras)
	require.True(t, fired, "10 trimmed characters must trigger")
	assert.Equal(t, longEnough, req.Text)
}

func TestExistingNoteSuppressesRetrigger(t *testing.T) {
	t.Parallel()

	c, store := newController(t, StrategyDoubleTerminator)
	paras := segment.Split("an annotated paragraph already\n\n")
	store.SetPending(0, "occupied")
	require.True(t, store.Fail("occupied"))

	c.Observe(keyEvent(true), paras)
	_, fired := c.Observe(keyEvent(true), paras)
	assert.False(t, fired, "failed entry suppresses automatic re-trigger")
}

func TestObserveIgnoresForeignEvents(t *testing.T) {
	t.Parallel()

	c, _ := newController(t, StrategyDoubleTerminator)
	paras := segment.Split("some paragraph of reasonable length\n\n")

	_, fired := c.Observe(contentEvent(), paras)
	assert.False(t, fired)

	c2, _ := newController(t, StrategyCountIncrease)
	_, fired = c2.Observe(keyEvent(true), paras)
	assert.False(t, fired)
}
