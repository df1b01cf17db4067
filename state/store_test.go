package state

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMerges(t *testing.T) {
	s := New()

	t.Run("unmentioned fields persist", func(t *testing.T) {
		s.Write(LLM, Fields{KeySelectedModels: []string{"a", "b"}})
		s.Write(LLM, Fields{"temperature": 0.5})

		got := s.ReadModule(LLM)
		assert.Equal(t, []string{"a", "b"}, got[KeySelectedModels])
		assert.Equal(t, 0.5, got["temperature"])
	})

	t.Run("unknown namespace is created", func(t *testing.T) {
		s.Write("custom", Fields{"x": 1})
		assert.Equal(t, Fields{"x": 1}, s.ReadModule("custom"))
	})

	t.Run("absent namespace reads as empty", func(t *testing.T) {
		got := s.ReadModule("nope")
		require.NotNil(t, got)
		assert.Empty(t, got)
	})
}

// TestWriteSequenceEqualsFold checks that any sequence of writes leaves a
// namespace equal to the left fold of shallow merges.
func TestWriteSequenceEqualsFold(t *testing.T) {
	sequences := [][]Fields{
		{{"a": 1}, {"b": 2}, {"a": 3}},
		{{"x": "one"}, {"y": nil}, {"x": "two", "z": true}},
		{{}, {"k": []int{1}}, {}},
	}

	for i, seq := range sequences {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			s := New(WithTree(Tree{}))
			want := Fields{}
			for _, partial := range seq {
				s.Write("ns", partial)
				for k, v := range partial {
					want[k] = v
				}
			}
			if diff := cmp.Diff(want, s.ReadModule("ns")); diff != "" {
				t.Errorf("namespace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadReturnsCopies(t *testing.T) {
	s := New()
	s.Write(App, Fields{KeyLoading: true})

	tree := s.Read()
	tree[App][KeyLoading] = false
	tree["injected"] = Fields{}

	assert.Equal(t, true, s.ReadModule(App)[KeyLoading])
	_, ok := s.Read()["injected"]
	assert.False(t, ok)
}

func TestListenerOrderAndArguments(t *testing.T) {
	s := New(WithTree(Tree{}))
	var calls []string

	for _, name := range []string{"first", "second", "third"} {
		name := name
		s.AddListener("ns", func(next, prev Fields) error {
			calls = append(calls, fmt.Sprintf("%s:%v->%v", name, prev["v"], next["v"]))
			return nil
		})
	}

	s.Write("ns", Fields{"v": 1})
	s.Write("ns", Fields{"v": 2})

	assert.Equal(t, []string{
		"first:<nil>->1", "second:<nil>->1", "third:<nil>->1",
		"first:1->2", "second:1->2", "third:1->2",
	}, calls)
}

func TestListenerMutationDoesNotLeak(t *testing.T) {
	s := New(WithTree(Tree{}))
	s.AddListener("ns", func(next, prev Fields) error {
		next["v"] = "tampered"
		return nil
	})
	var seen any
	s.AddListener("ns", func(next, prev Fields) error {
		seen = next["v"]
		return nil
	})

	s.Write("ns", Fields{"v": "clean"})

	assert.Equal(t, "clean", seen)
	assert.Equal(t, "clean", s.ReadModule("ns")["v"])
}

func TestListenerFailuresAreContained(t *testing.T) {
	s := New(WithTree(Tree{}))
	boom := errors.New("boom")
	var ranLast bool

	s.AddListener("ns", func(next, prev Fields) error { return boom })
	s.AddListener("ns", func(next, prev Fields) error { panic("kaboom") })
	s.AddListener("ns", func(next, prev Fields) error {
		ranLast = true
		return nil
	})

	report := s.Write("ns", Fields{"v": 1})

	assert.True(t, ranLast, "later listeners must still run")
	require.Len(t, report.Results, 3)
	failed := report.Failed()
	require.Len(t, failed, 2)
	assert.ErrorIs(t, failed[0].Err, boom)
	assert.False(t, failed[0].Panicked)
	assert.True(t, failed[1].Panicked)
	assert.Contains(t, failed[1].Err.Error(), "kaboom")
	assert.ErrorIs(t, report.Err(), boom)
	assert.Equal(t, 1, s.ReadModule("ns")["v"])
}

func TestRemoveListener(t *testing.T) {
	s := New(WithTree(Tree{}))
	var count int
	id := s.AddListener("ns", func(next, prev Fields) error {
		count++
		return nil
	})

	s.Write("ns", Fields{"v": 1})
	assert.True(t, s.RemoveListener("ns", id))
	assert.False(t, s.RemoveListener("ns", id))
	s.Write("ns", Fields{"v": 2})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, s.ListenerCount("ns"))
}

func TestResetModulePassesTruePrevious(t *testing.T) {
	s := New()
	s.Write(Summarization, Fields{KeyWinner: "gpt-4"})

	var gotNext, gotPrev Fields
	s.AddListener(Summarization, func(next, prev Fields) error {
		gotNext, gotPrev = next, prev
		return nil
	})

	s.ResetModule(Summarization)

	assert.Empty(t, gotNext)
	assert.Equal(t, "gpt-4", gotPrev[KeyWinner])
	assert.Empty(t, s.ReadModule(Summarization))

	t.Run("absent namespace is a no-op", func(t *testing.T) {
		report := s.ResetModule("never-written")
		assert.Empty(t, report.Results)
		_, ok := s.Read()["never-written"]
		assert.False(t, ok)
	})
}

func TestResetAllPassesTruePrevious(t *testing.T) {
	s := New()
	s.Write(App, Fields{KeyLoading: true, KeyError: "bad"})

	var gotNext, gotPrev Fields
	s.AddListener(App, func(next, prev Fields) error {
		gotNext, gotPrev = next, prev
		return nil
	})
	var llmCalls int
	s.AddListener(LLM, func(next, prev Fields) error {
		llmCalls++
		return nil
	})

	report := s.ResetAll()

	assert.Len(t, report.Results, 2)
	assert.Equal(t, 1, llmCalls)
	if diff := cmp.Diff(DefaultTree()[App], gotNext); diff != "" {
		t.Errorf("next mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, true, gotPrev[KeyLoading])
	assert.Equal(t, "bad", gotPrev[KeyError])
	if diff := cmp.Diff(DefaultTree(), s.Read()); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFromListenerIsQueued(t *testing.T) {
	s := New(WithTree(Tree{}))
	var observed []any

	// Both listeners of the first write must see v=1 even though the first
	// listener issues another write.
	s.AddListener("ns", func(next, prev Fields) error {
		if next["v"] == 1 {
			report := s.Write("ns", Fields{"v": 2})
			assert.True(t, report.Queued)
		}
		observed = append(observed, next["v"])
		return nil
	})
	s.AddListener("ns", func(next, prev Fields) error {
		observed = append(observed, next["v"])
		return nil
	})

	report := s.Write("ns", Fields{"v": 1})

	assert.False(t, report.Queued)
	assert.Equal(t, []any{1, 1, 2, 2}, observed)
	assert.Equal(t, 2, s.ReadModule("ns")["v"])
}

func TestConcurrentWrites(t *testing.T) {
	s := New(WithTree(Tree{}))
	var mu sync.Mutex
	var notified int
	s.AddListener("ns", func(next, prev Fields) error {
		mu.Lock()
		notified++
		mu.Unlock()
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Write("ns", Fields{fmt.Sprintf("k%d", i): i})
		}(i)
	}
	wg.Wait()

	// A queued write is applied before the draining Write returns.
	assert.Len(t, s.ReadModule("ns"), 50)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 50, notified)
}

func TestValue(t *testing.T) {
	f := Fields{"name": "gpt-4", "count": 3}

	name, ok := Value[string](f, "name")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4", name)

	_, ok = Value[int](f, "name")
	assert.False(t, ok)

	assert.Equal(t, 3, ValueOr(f, "count", 0))
	assert.Equal(t, 7, ValueOr(f, "missing", 7))

	for _, v := range []any{2, int64(2), float32(2), 2.0} {
		n, ok := Number(Fields{"n": v}, "n")
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 2.0, n)
	}
	_, ok = Number(f, "name")
	assert.False(t, ok)
}

func TestSubscribe(t *testing.T) {
	s := New(WithTree(Tree{}))
	var order []string
	s.AddListener("ns", func(next, prev Fields) error {
		order = append(order, "listener")
		return nil
	})

	changes, unsubscribe := s.Subscribe(4)
	s.Write("ns", Fields{"v": 1})
	s.Write("other", Fields{"w": 2})

	first := <-changes
	assert.Equal(t, "ns", first.Namespace)
	assert.Equal(t, 1, first.Next["v"])
	assert.Nil(t, first.Prev["v"])
	second := <-changes
	assert.Equal(t, "other", second.Namespace)
	assert.Equal(t, []string{"listener"}, order)

	unsubscribe()
	unsubscribe()
	_, open := <-changes
	assert.False(t, open, "channel must be closed after unsubscribe")

	// Writes after unsubscribe must not panic on the closed channel.
	s.Write("ns", Fields{"v": 3})
}

func TestSubscribeDropsWhenFull(t *testing.T) {
	s := New(WithTree(Tree{}))
	changes, unsubscribe := s.Subscribe(1)
	defer unsubscribe()

	s.Write("ns", Fields{"v": 1})
	s.Write("ns", Fields{"v": 2})

	got := <-changes
	assert.Equal(t, 1, got.Next["v"])
	select {
	case c := <-changes:
		t.Fatalf("expected dropped change, got %+v", c)
	default:
	}
}
