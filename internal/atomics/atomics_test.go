package atomics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteMinInt64_OnlyShrinks(t *testing.T) {
	var v int64 = 10
	require.True(t, WriteMinInt64(&v, 5))
	require.Equal(t, int64(5), v)
	require.False(t, WriteMinInt64(&v, 8))
	require.Equal(t, int64(5), v)
}

func TestWriteMinInt64_ConcurrentWritersConvergeOnMinimum(t *testing.T) {
	var v int64 = 1 << 30
	var wg sync.WaitGroup
	for i := int64(0); i < 100; i++ {
		wg.Add(1)
		go func(val int64) {
			defer wg.Done()
			WriteMinInt64(&v, val)
		}(i)
	}
	wg.Wait()
	require.Equal(t, int64(0), v)
}

func TestWriteMinInt32_ConcurrentWritersConvergeOnMinimum(t *testing.T) {
	var v int32 = 1 << 20
	var wg sync.WaitGroup
	for i := int32(0); i < 100; i++ {
		wg.Add(1)
		go func(val int32) {
			defer wg.Done()
			WriteMinInt32(&v, val)
		}(i)
	}
	wg.Wait()
	require.Equal(t, int32(0), v)
}

func TestCASInt32_SucceedsOnlyWhenOldMatches(t *testing.T) {
	var v int32 = 0
	require.True(t, CASInt32(&v, 0, 1))
	require.False(t, CASInt32(&v, 0, 2))
	require.Equal(t, int32(1), v)
}

func TestAddFloat64_ConcurrentAddsSumExactly(t *testing.T) {
	var v float64
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			AddFloat64(&v, 1.0)
		}()
	}
	wg.Wait()
	require.Equal(t, float64(1000), v)
}
