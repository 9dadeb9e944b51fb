package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_LoadReplacesSnapshot(t *testing.T) {
	items := []string{"a", "b"}
	l := NewList(func(ctx context.Context) ([]string, error) { return items, nil })

	assert.False(t, l.Loaded())
	require.NoError(t, l.Load(context.Background()))
	assert.True(t, l.Loaded())
	assert.Equal(t, []string{"a", "b"}, l.Items())

	items = []string{"c"}
	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, []string{"c"}, l.Items(), "load replaces wholesale, no merge")
}

func TestList_LoadErrorKeepsPriorSnapshot(t *testing.T) {
	fail := false
	l := NewList(func(ctx context.Context) ([]string, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []string{"a", "b"}, nil
	})

	require.NoError(t, l.Load(context.Background()))
	fail = true
	assert.Error(t, l.Load(context.Background()))
	assert.Equal(t, []string{"a", "b"}, l.Items(), "failed load leaves the old snapshot intact")
	assert.True(t, l.Loaded())
}

func TestList_FilterIsLocalAndRepeatable(t *testing.T) {
	calls := 0
	l := NewList(func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"apple", "banana", "avocado"}, nil
	})
	require.NoError(t, l.Load(context.Background()))

	l.SetFilter(func(s string) bool { return s[0] == 'a' })
	first := l.Items()
	second := l.Items()
	assert.Equal(t, []string{"apple", "avocado"}, first)
	assert.Equal(t, first, second, "same predicate over same snapshot")
	assert.Equal(t, 1, calls, "filtering never refetches")

	l.SetFilter(nil)
	assert.Equal(t, []string{"apple", "banana", "avocado"}, l.Items())
}

func TestList_MutateReloadsOnSuccess(t *testing.T) {
	loads := 0
	l := NewList(func(ctx context.Context) ([]string, error) {
		loads++
		return []string{"fresh"}, nil
	})
	require.NoError(t, l.Load(context.Background()))

	mutated := false
	err := l.Mutate(context.Background(), func(ctx context.Context) error {
		mutated = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, mutated)
	assert.Equal(t, 2, loads, "successful mutation reloads the list")
}

func TestList_MutateErrorSkipsReload(t *testing.T) {
	loads := 0
	l := NewList(func(ctx context.Context) ([]string, error) {
		loads++
		return []string{"fresh"}, nil
	})
	require.NoError(t, l.Load(context.Background()))

	boom := errors.New("boom")
	err := l.Mutate(context.Background(), func(ctx context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, loads, "failed mutation must not reload")
	assert.Equal(t, []string{"fresh"}, l.Items())
}

func TestList_SetLoaderDropsSnapshot(t *testing.T) {
	l := NewList(func(ctx context.Context) ([]string, error) { return []string{"old"}, nil })
	require.NoError(t, l.Load(context.Background()))

	l.SetLoader(func(ctx context.Context) ([]string, error) { return []string{"new"}, nil })
	assert.Empty(t, l.Items(), "rescoping drops the unrelated snapshot")
	assert.False(t, l.Loaded())

	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, []string{"new"}, l.Items())
}
