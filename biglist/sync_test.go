package biglist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/bigarray/store"
)

func TestSynchronizedConcurrentAppends(t *testing.T) {
	l := Synchronized(New[int](store.WithSegmentBits(4)))

	const goroutines = 8
	const perGoroutine = 500

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				l.Add(i)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(goroutines*perGoroutine), l.Size())
}

func TestSynchronizedDo(t *testing.T) {
	l := Synchronized(New[int](store.WithSegmentBits(2)))
	for i := 0; i < 10; i++ {
		l.Add(i)
	}

	// Compound read-modify under one lock acquisition.
	var sum int
	l.Do(func(inner *BigList[int]) {
		for _, v := range inner.All() {
			sum += v
		}
		inner.Clear()
	})

	assert.Equal(t, 45, sum)
	assert.Equal(t, uint64(0), l.Size())
}

func TestSynchronizedStackAndRemove(t *testing.T) {
	l := Synchronized(New[int](store.WithSegmentBits(2)))

	l.Push(1)
	l.Push(2)
	l.InsertAt(1, 9)
	assert.Equal(t, 9, l.Get(1))
	assert.Equal(t, 2, l.Pop())
	assert.Equal(t, 9, l.RemoveAt(1))
	assert.Equal(t, 1, l.Set(0, 7))

	l.Trim(0)
	assert.Equal(t, uint64(1), l.Size())
}
