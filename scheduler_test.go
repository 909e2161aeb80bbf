package edfsched_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/edfsched"
)

type selection struct {
	id        string
	remaining int64
}

type recorder struct {
	admitted []string
	selected []selection
	removed  []string
	empty    int
}

func (r *recorder) OnAdmit(task *edfsched.Task[string]) {
	r.admitted = append(r.admitted, task.ID)
}

func (r *recorder) OnSelect(result edfsched.Result[string]) {
	r.selected = append(r.selected, selection{result.Task.ID, result.Remaining})
}

func (r *recorder) OnRemove(task *edfsched.Task[string]) {
	r.removed = append(r.removed, task.ID)
}

func (r *recorder) OnEmpty(edfsched.Tick) {
	r.empty++
}

func TestScheduler_Admit(t *testing.T) {
	t.Parallel()

	s := edfsched.New[string]()
	s.Advance(10)

	task := s.Admit(127, "t")
	assert.Equal(t, edfsched.Tick(137), task.Deadline)
	assert.Equal(t, int64(-119), s.Domain().Int(task.Deadline))

	res, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, int64(127), res.Remaining)
	assert.Same(t, task, res.Task)
}

func TestScheduler_Step(t *testing.T) {
	t.Parallel()

	// One cycle of the driving loop: the store is drained by its last step so
	// every cycle yields the same selections while the clock keeps wrapping.
	want := []selection{{"t1", -10}, {"t2", 107}, {"t3", 60}}

	rec := &recorder{}
	s := edfsched.New(edfsched.WithMetricsHook[string](rec))

	const cycles = 20
	for range cycles {
		var got []selection
		step := func(tick int64) bool {
			res, ok := s.Step(tick)
			if ok {
				got = append(got, selection{res.Task.ID, res.Remaining})
			}
			return ok
		}

		s.Admit(10, "t1")
		s.Admit(127, "t2")
		require.True(t, step(20))
		s.Admit(110, "t3")
		require.True(t, step(0))
		require.True(t, step(50))
		require.False(t, step(0))

		assert.Equal(t, want, got)
		assert.Equal(t, 0, s.Len())
	}

	assert.Equal(t, s.Domain().Wrap(70*cycles), s.Now())
	assert.Len(t, rec.admitted, 3*cycles)
	assert.Len(t, rec.selected, 3*cycles)
	assert.Empty(t, rec.removed)
	assert.Equal(t, cycles, rec.empty)
}

func TestScheduler_Next(t *testing.T) {
	t.Parallel()

	t.Run("empty scheduler selects nothing", func(t *testing.T) {
		t.Parallel()

		s := edfsched.New[string]()
		s.Advance(42)

		res, ok := s.Next()
		assert.False(t, ok)
		assert.Nil(t, res.Task)
		assert.Equal(t, edfsched.Tick(42), res.Now)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("removes exactly one task", func(t *testing.T) {
		t.Parallel()

		s := edfsched.New[int]()
		for i := range 5 {
			s.Admit(int64(50-i), i)
		}

		for want := 5; want > 0; want-- {
			require.Equal(t, want, s.Len())
			_, ok := s.Next()
			require.True(t, ok)
		}
		assert.Equal(t, 0, s.Len())

		_, ok := s.Next()
		assert.False(t, ok)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("duplicate ids are distinct tasks", func(t *testing.T) {
		t.Parallel()

		s := edfsched.New[string]()
		first := s.Admit(5, "dup")
		second := s.Admit(5, "dup")
		assert.Equal(t, int64(0), first.Seq())
		assert.Equal(t, int64(1), second.Seq())

		res, ok := s.Next()
		require.True(t, ok)
		assert.Same(t, first, res.Task)

		res, ok = s.Next()
		require.True(t, ok)
		assert.Same(t, second, res.Task)
	})

	t.Run("peek does not remove", func(t *testing.T) {
		t.Parallel()

		s := edfsched.New[string]()
		s.Admit(30, "late")
		s.Admit(3, "early")

		for range 3 {
			res, ok := s.Peek()
			require.True(t, ok)
			assert.Equal(t, "early", res.Task.ID)
		}
		assert.Equal(t, 2, s.Len())

		res, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, "early", res.Task.ID)
		assert.Equal(t, 1, s.Len())
	})
}

func TestScheduler_Policies(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		domain        edfsched.Domain
		wantFirst     string
		wantRemaining int64
	}{
		"signed selects the overdue task": {
			domain:        edfsched.Int8,
			wantFirst:     "passed",
			wantRemaining: -1,
		},
		"unsigned selects the upcoming task": {
			domain:        edfsched.Uint8,
			wantFirst:     "upcoming",
			wantRemaining: 100,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := edfsched.New(edfsched.WithDomain[string](tt.domain))
			s.Admit(10, "passed")
			s.Advance(11)
			s.Admit(100, "upcoming")

			res, ok := s.Next()
			require.True(t, ok)
			assert.Equal(t, tt.wantFirst, res.Task.ID)
			assert.Equal(t, tt.wantRemaining, res.Remaining)
		})
	}
}

func TestScheduler_RemoveAt(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	s := edfsched.New(edfsched.WithMetricsHook[string](rec))
	s.Admit(1, "a")
	s.Admit(2, "b")
	s.Admit(3, "c")

	removed := s.RemoveAt(1)
	assert.Equal(t, "b", removed.ID)
	assert.Equal(t, []string{"b"}, rec.removed)
	assert.Empty(t, rec.selected)

	var ids []string
	for task := range s.Tasks() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)

	assert.Panics(t, func() { s.RemoveAt(2) })
	assert.Panics(t, func() { s.RemoveAt(-1) })
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"b"}, rec.removed)
}

func TestScheduler_IteratorsStopEarly(t *testing.T) {
	t.Parallel()

	s := edfsched.New[string]()
	s.Admit(1, "a")
	s.Admit(2, "b")
	s.Admit(3, "c")

	var deadlines []edfsched.Tick
	for deadline := range s.Deadlines() {
		deadlines = append(deadlines, deadline)
		if len(deadlines) == 2 {
			break
		}
	}
	assert.Equal(t, []edfsched.Tick{1, 2}, deadlines)

	var ids []string
	for task := range s.Tasks() {
		ids = append(ids, task.ID)
		if task.ID == "a" {
			break
		}
	}
	assert.Equal(t, []string{"a"}, ids)

	assert.Equal(t, 3, s.Len())
}

func TestScheduler_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := edfsched.New(edfsched.WithLogger[string](logger))
	s.Admit(10, "t1")
	s.Step(20)
	s.Next()

	dec := json.NewDecoder(&buf)
	var msgs []string
	var selected map[string]any
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		msgs = append(msgs, rec["msg"].(string))
		if rec["msg"] == "selected" {
			selected = rec
		}
	}

	assert.Equal(t, []string{"admitted", "selected", "none"}, msgs)
	require.NotNil(t, selected)
	assert.Equal(t, "t1", selected["task"])
	assert.EqualValues(t, 20, selected["now"])
	assert.EqualValues(t, -10, selected["remaining"])
}

func TestScheduler_WithConfig(t *testing.T) {
	t.Parallel()

	cfg := &edfsched.Config{Width: 16, Policy: edfsched.Policies.Unsigned}
	s := edfsched.New(edfsched.WithConfig[string](cfg))
	assert.Equal(t, edfsched.MustDomain(16, edfsched.Policies.Unsigned), s.Domain())

	s.Admit(1000, "wide")
	res, ok := s.Step(300)
	require.True(t, ok)
	assert.Equal(t, int64(700), res.Remaining)
}

func TestScheduler_InvalidDomain(t *testing.T) {
	t.Parallel()

	t.Run("zero domain keeps the default", func(t *testing.T) {
		t.Parallel()

		s := edfsched.New(edfsched.WithDomain[string](edfsched.Domain{}))
		assert.Equal(t, edfsched.Int8, s.Domain())

		s.Admit(50, "a")
		s.Admit(5, "b")

		res, ok := s.Next()
		require.True(t, ok)
		assert.Equal(t, "b", res.Task.ID)
		assert.Equal(t, int64(5), res.Remaining)
	})

	t.Run("invalid config panics", func(t *testing.T) {
		t.Parallel()

		cfg := &edfsched.Config{Width: 0, Policy: edfsched.Policies.Unsigned}
		assert.Panics(t, func() { edfsched.New(edfsched.WithConfig[string](cfg)) })
	})

	t.Run("config errors are returned", func(t *testing.T) {
		t.Parallel()

		_, err := edfsched.NewFromConfig[string](&edfsched.Config{Width: 0, Policy: edfsched.Policies.Unsigned})
		assert.ErrorIs(t, err, edfsched.ErrInvalidWidth)

		_, err = edfsched.NewFromConfig[string](&edfsched.Config{Width: 8})
		assert.ErrorIs(t, err, edfsched.ErrUnknownPolicy)
	})

	t.Run("config overrides the domain option", func(t *testing.T) {
		t.Parallel()

		cfg := &edfsched.Config{Width: 8, Policy: edfsched.Policies.Unsigned}
		s, err := edfsched.NewFromConfig(cfg, edfsched.WithDomain[string](edfsched.Int8))
		require.NoError(t, err)
		assert.Equal(t, edfsched.Uint8, s.Domain())
	})
}
