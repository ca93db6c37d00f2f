package bridge

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndCall(t *testing.T) {
	b := New()
	b.Register("greet", func(args ...any) (any, error) {
		return "hello " + args[0].(string), nil
	})

	result, err := b.Call("greet", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", result)
}

func TestRegisterChaining(t *testing.T) {
	b := New().
		Register("a", func(args ...any) (any, error) { return 1, nil }).
		Register("b", func(args ...any) (any, error) { return 2, nil })

	assert.True(t, b.Has("a"))
	assert.True(t, b.Has("b"))
	assert.ElementsMatch(t, []string{"a", "b"}, b.Names())
}

func TestRegisterReplaces(t *testing.T) {
	b := New()
	b.Register("f", func(args ...any) (any, error) { return "old", nil })
	b.Register("f", func(args ...any) (any, error) { return "new", nil })

	result, err := b.Call("f")
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestRegisterPanics(t *testing.T) {
	assert.Panics(t, func() {
		New().Register("", func(args ...any) (any, error) { return nil, nil })
	})
	assert.Panics(t, func() {
		New().Register("f", nil)
	})
}

func TestCallNotRegistered(t *testing.T) {
	_, err := New().Call("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRegistered)
	assert.Contains(t, err.Error(), "missing")
}

func TestGet(t *testing.T) {
	b := New()
	fn, ok := b.Get("f")
	assert.False(t, ok)
	assert.Nil(t, fn)

	b.Register("f", func(args ...any) (any, error) { return 7, nil })
	fn, ok = b.Get("f")
	require.True(t, ok)
	result, err := fn()
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}

func TestCallErrorPropagates(t *testing.T) {
	wantErr := errors.New("action failed")
	b := New().Register("fail", func(args ...any) (any, error) {
		return nil, wantErr
	})

	_, err := b.Call("fail")
	assert.ErrorIs(t, err, wantErr)
}

func TestConcurrentAccess(t *testing.T) {
	b := New().Register("f", func(args ...any) (any, error) { return 1, nil })

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			b.Register("f", func(args ...any) (any, error) { return 2, nil })
		}()
		go func() {
			defer wg.Done()
			_, _ = b.Call("f")
		}()
	}
	wg.Wait()

	assert.True(t, b.Has("f"))
}
