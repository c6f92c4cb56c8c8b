package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPendingFIFO(t *testing.T) {
	loop := New()
	var order []int

	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, loop.Post(func() { order = append(order, i) }))
	}
	assert.Equal(t, 3, loop.Len())
	assert.Empty(t, order, "tasks must not run on Post")

	assert.Equal(t, 3, loop.RunPending())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, loop.Len())
}

func TestTasksPostedDuringTurnRunNextTurn(t *testing.T) {
	loop := New()
	var order []string

	loop.Post(func() {
		order = append(order, "first")
		loop.Post(func() { order = append(order, "nested") })
	})

	assert.Equal(t, 1, loop.RunPending())
	assert.Equal(t, []string{"first"}, order)

	assert.Equal(t, 1, loop.RunPending())
	assert.Equal(t, []string{"first", "nested"}, order)
}

func TestPostNil(t *testing.T) {
	loop := New()
	assert.False(t, loop.Post(nil))
	assert.Equal(t, 0, loop.Len())
}

func TestCloseDropsTasks(t *testing.T) {
	loop := New()
	ran := false

	loop.Post(func() { ran = true })
	loop.Close()

	assert.False(t, loop.Post(func() { ran = true }))
	assert.Equal(t, 0, loop.RunPending())
	assert.False(t, ran)
}

func TestRunProcessesConcurrentPosts(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const producers = 8
	var mu sync.Mutex
	count := 0
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Post(func() {
				mu.Lock()
				count++
				if count == producers {
					close(done)
				}
				mu.Unlock()
			})
		}()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- loop.Run(ctx) }()

	wg.Wait()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timed out waiting for tasks")
	}

	loop.Close()
	require.NoError(t, <-errCh)
}

func TestRunStopsOnContext(t *testing.T) {
	loop := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
}
