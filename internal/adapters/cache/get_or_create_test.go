package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type data = string

type callback func() (data, error)

func withWait[T any](client *mockCacheClient[T], waits int, f callback) callback {
	return func() (data, error) {
		for i := 0; i < waits; i++ {
			client.wait()
		}
		return f()
	}
}

func createCallback(variant int) callback {
	return func() (data, error) {
		return fmt.Sprintf("data%d", variant), nil
	}
}

func createErrorCallback(variant int) callback {
	return func() (data, error) {
		return "", fmt.Errorf("error%d", variant)
	}
}

func createUnreachable(t *testing.T) callback {
	return func() (data, error) {
		t.Error("Unreachable code executed")
		return "", nil
	}
}

func TestMockedCacheFinishes(t *testing.T) {
	for clientCount := 0; clientCount < 10; clientCount++ {
		server, clients := NewMockCacheServer[data](clientCount, 100)
		completedWg := sync.WaitGroup{}
		completedWg.Add(clientCount)
		for i := 0; i < clientCount; i++ {
			go func() {
				client := clients[i]
				client.waitUntilDone()
				completedWg.Done()
			}()
		}
		server.processTicks()
		completedWg.Wait()
	}
}

func TestGetOrCreateSingle(t *testing.T) {
	server, clients := NewMockCacheServer[data](1, 10)

	go func() {
		client := clients[0]
		assert.Equal(t, 0, client.server.currentTick)

		value, err := GetOrCreate(context.Background(), client, "key1", createCallback(1))
		assert.Nil(t, err)
		assert.Equal(t, "data1", value)
		assert.Equal(t, 0, client.server.currentTick)

		client.wait()

		assert.Equal(t, 1, client.server.currentTick)

		client.waitUntilDone()
	}()

	server.processTicks()
}

func TestGetOrCreateMultiple(t *testing.T) {
	server, clients := NewMockCacheServer[data](2, 10)

	go func() {
		client := clients[0]
		value, err := GetOrCreate(context.Background(), client, "key1", createCallback(1))
		assert.Nil(t, err)
		assert.Equal(t, "data1", value)
		assert.Equal(t, 0, client.server.currentTick)

		value, err = GetOrCreate(context.Background(), client, "key2", withWait(client, 2, createCallback(2)))
		assert.Nil(t, err)
		assert.Equal(t, "data2", value)
		assert.Equal(t, 2, client.server.currentTick)

		client.waitUntilDone()
	}()

	go func() {
		client := clients[1]
		client.wait() // Wait for the first client to populate the cache
		value, err := GetOrCreate(context.Background(), client, "key1", createUnreachable(t))
		assert.Nil(t, err)
		assert.Equal(t, "data1", value)
		assert.Equal(t, 1, client.server.currentTick)

		value, err = GetOrCreate(context.Background(), client, "key2", createUnreachable(t))
		assert.Nil(t, err)
		assert.Equal(t, "data2", value)
		// The first client inserts this during the second tick.
		// Depending on which goroutine the scheduler runs first we observe
		// it in the second or third tick.
		assert.True(t, client.server.currentTick == 2 || client.server.currentTick == 3)

		client.waitUntilDone()
	}()

	server.processTicks()
}

func TestGetOrCreateErrorRetries(t *testing.T) {
	server, clients := NewMockCacheServer[data](2, 10)

	go func() {
		client := clients[0]
		_, err := GetOrCreate(context.Background(), client, "key1", withWait(client, 2, createErrorCallback(1)))
		assert.NotNil(t, err)
		assert.Equal(t, 2, client.server.currentTick)

		client.waitUntilDone()
	}()

	go func() {
		client := clients[1]
		client.wait()

		// This should wait for the first client to finish (not storing a result due to an error)
		// then it should retry and get the result
		value, err := GetOrCreate(context.Background(), client, "key1", withWait(client, 2, createCallback(1)))
		assert.Nil(t, err)
		assert.Equal(t, "data1", value)
		assert.True(t, client.server.currentTick == 4 || client.server.currentTick == 5)

		client.waitUntilDone()
	}()

	server.processTicks()
}

func TestGetOrCreateCleansUpOnError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		cache Cache[data]
	}{
		{
			name:  "BasicCache",
			cache: NewBasicCache[data](),
		},
		{
			name:  "TTLCache",
			cache: NewTTLCache[data](1 * time.Minute),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := GetOrCreate(context.Background(), c.cache, "key1", createErrorCallback(10))
			require.Error(t, err)

			// The cache should be empty and allow us to create a new entry
			value, err := GetOrCreate(context.Background(), c.cache, "key1", createCallback(1))
			require.Nil(t, err)
			require.Equal(t, "data1", value)
		})
	}
}
