package ops

import (
	"strconv"
	"testing"

	"github.com/lumavpn/broadcast"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func collect[T any](ch *broadcast.Channel[T]) *[]T {
	out := new([]T)
	ch.Listen(func(v T) { *out = append(*out, v) })
	return out
}

func TestMap(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Map(src, strconv.Itoa)

	got := collect(derived)
	for _, v := range []int{1, 2, 3} {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []string{"1", "2", "3"}, *got)
}

func TestMap_ReplaysTransformedHistory(t *testing.T) {
	emitter, src := broadcast.New[int](broadcast.WithStrategy(broadcast.UnboundedReplay()))
	emitter.Broadcast(1)
	emitter.Broadcast(2)

	derived := Map(src, func(v int) int { return v * 10 })
	assert.Equal(t, broadcast.UnboundedReplay(), derived.Strategy())

	got := collect(derived)
	assert.Equal(t, []int{10, 20}, *got)

	emitter.Broadcast(3)
	assert.Equal(t, []int{10, 20, 30}, *got)
}

func TestFilter(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Filter(src, func(v int) bool { return v%2 == 0 })

	got := collect(derived)
	for v := 1; v <= 6; v++ {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{2, 4, 6}, *got)
}

func TestSkipRepeats(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := SkipRepeats(src)

	got := collect(derived)
	for _, v := range []int{1, 1, 2, 1, 2, 2, 3} {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{1, 2, 1, 2, 3}, *got)
}

func TestUniqueValues(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := UniqueValues(src)

	got := collect(derived)
	for _, v := range []int{1, 2, 1, 3, 1, 3, 2} {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{1, 2, 3}, *got)
}

func TestWithPrevious(t *testing.T) {
	emitter, src := broadcast.New[string]()
	derived := WithPrevious(src)

	got := collect(derived)
	emitter.Broadcast("a")
	emitter.Broadcast("b")
	emitter.Broadcast("c")

	transitions := *got
	assert.Len(t, transitions, 3)
	assert.Nil(t, transitions[0].Previous)
	assert.Equal(t, "a", transitions[0].Current)
	assert.Equal(t, "a", *transitions[1].Previous)
	assert.Equal(t, "b", transitions[1].Current)
	assert.Equal(t, "b", *transitions[2].Previous)
	assert.Equal(t, "c", transitions[2].Current)
}

func TestSkip(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Skip(src, 2)

	got := collect(derived)
	for v := 1; v <= 5; v++ {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{3, 4, 5}, *got)
}

func TestSkip_NonPositiveForwardsEverything(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Skip(src, -1)

	got := collect(derived)
	emitter.Broadcast(1)
	emitter.Broadcast(2)
	assert.Equal(t, []int{1, 2}, *got)
}

func TestTake(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Take(src, 2)

	got := collect(derived)
	for v := 1; v <= 5; v++ {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{1, 2}, *got)

	// The upstream listener stays registered, merely inert.
	assert.Equal(t, 1, src.Listeners())
}

func TestTake_NonPositiveForwardsNothing(t *testing.T) {
	emitter, src := broadcast.New[int]()
	derived := Take(src, 0)

	got := collect(derived)
	emitter.Broadcast(1)
	assert.Empty(t, *got)
}

func TestSkipNil(t *testing.T) {
	emitter, src := broadcast.New[*int]()
	derived := SkipNil(src)

	got := collect(derived)
	emitter.Broadcast(lo.ToPtr(1))
	emitter.Broadcast(nil)
	emitter.Broadcast(lo.ToPtr(2))
	assert.Equal(t, []int{1, 2}, *got)
}

func TestHotOnly_DiscardsReplay(t *testing.T) {
	emitter, src := broadcast.New[int](broadcast.WithStrategy(broadcast.UnboundedReplay()))
	emitter.Broadcast(1)
	emitter.Broadcast(2)

	derived := HotOnly(src)
	assert.Equal(t, broadcast.NoBuffering(), derived.Strategy())

	got := collect(derived)
	assert.Empty(t, *got)

	emitter.Broadcast(3)
	emitter.Broadcast(4)
	assert.Equal(t, []int{3, 4}, *got)
}

func TestCombinators_Chained(t *testing.T) {
	emitter, src := broadcast.New[int](broadcast.WithStrategy(broadcast.UnboundedReplay()))

	derived := Take(Filter(src, func(v int) bool { return v%2 == 1 }), 2)

	got := collect(derived)
	for v := 1; v <= 10; v++ {
		emitter.Broadcast(v)
	}
	assert.Equal(t, []int{1, 3}, *got)
}

func TestCombinators_DerivedKeepsSourceStrategy(t *testing.T) {
	_, bounded := broadcast.New[int](broadcast.WithStrategy(broadcast.BoundedReplay(3)))

	assert.Equal(t, broadcast.BoundedReplay(3), Filter(bounded, func(int) bool { return true }).Strategy())
	assert.Equal(t, broadcast.BoundedReplay(3), Skip(bounded, 1).Strategy())
	assert.Equal(t, broadcast.BoundedReplay(3), UniqueValues(bounded).Strategy())
}
