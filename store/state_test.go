package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateBasics(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		s := NewState()
		s.Set("key", "value")

		v, ok := s.Get("key")
		assert.True(t, ok)
		assert.Equal(t, "value", v)
	})

	t.Run("missing key", func(t *testing.T) {
		s := NewState()
		_, ok := s.Get("nope")
		assert.False(t, ok)
		assert.False(t, s.Has("nope"))
	})

	t.Run("delete", func(t *testing.T) {
		s := NewStateFrom(map[string]any{"a": 1})
		s.Delete("a")
		assert.False(t, s.Has("a"))
		s.Delete("a") // no-op
	})

	t.Run("keys and len", func(t *testing.T) {
		s := NewStateFrom(map[string]any{"a": 1, "b": 2})
		assert.Equal(t, 2, s.Len())
		assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
	})

	t.Run("clear", func(t *testing.T) {
		s := NewStateFrom(map[string]any{"a": 1})
		s.Clear()
		assert.Equal(t, 0, s.Len())
	})
}

func TestStateMerge(t *testing.T) {
	t.Run("overwrites present keys and keeps absent ones", func(t *testing.T) {
		s := NewStateFrom(map[string]any{"a": 1, "b": 2})
		s.Merge(map[string]any{"b": 20, "c": 3})

		assert.Equal(t, map[string]any{"a": 1, "b": 20, "c": 3}, s.Data())
	})

	t.Run("merge is shallow", func(t *testing.T) {
		s := NewStateFrom(map[string]any{
			"nested": map[string]any{"x": 1, "y": 2},
		})
		s.Merge(map[string]any{
			"nested": map[string]any{"x": 10},
		})

		// The nested map is replaced wholesale, not deep-merged.
		assert.Equal(t, map[string]any{"x": 10}, s.Data()["nested"])
	})

	t.Run("empty merge is a no-op", func(t *testing.T) {
		s := NewStateFrom(map[string]any{"a": 1})
		s.Merge(nil)
		s.Merge(map[string]any{})
		assert.Equal(t, map[string]any{"a": 1}, s.Data())
	})
}

func TestStateDataIsCopy(t *testing.T) {
	s := NewStateFrom(map[string]any{"a": 1})
	data := s.Data()
	data["a"] = 999

	v, _ := s.Get("a")
	assert.Equal(t, 1, v)
}

func TestStateFromCopiesSeed(t *testing.T) {
	seed := map[string]any{"a": 1}
	s := NewStateFrom(seed)
	seed["a"] = 2

	v, _ := s.Get("a")
	assert.Equal(t, 1, v)
}

func TestStateConcurrent(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			s.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Data()
		}()
	}
	wg.Wait()

	assert.True(t, s.Has("counter"))
}
