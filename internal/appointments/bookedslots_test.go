package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	slots []string
	calls int
}

func (f *fakeSource) BookedSlots(ctx context.Context, therapistID uuid.UUID, date string) ([]string, error) {
	f.calls++
	return f.slots, nil
}

func newTestCache(t *testing.T, source SlotSource) (*BookedSlotsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewBookedSlotsCache(source, rdb, 30*time.Second, nil), mr
}

func TestCacheServesSecondRead(t *testing.T) {
	src := &fakeSource{slots: []string{"09:00:00"}}
	cache, _ := newTestCache(t, src)
	tid := uuid.New()

	for i := 0; i < 2; i++ {
		slots, err := cache.BookedSlots(context.Background(), tid, "2024-06-03")
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00:00"}, slots)
	}
	assert.Equal(t, 1, src.calls, "second read should come from redis")
}

func TestInvalidateForcesRefetch(t *testing.T) {
	src := &fakeSource{slots: []string{"09:00:00"}}
	cache, _ := newTestCache(t, src)
	tid := uuid.New()

	_, err := cache.BookedSlots(context.Background(), tid, "2024-06-03")
	require.NoError(t, err)

	src.slots = []string{"09:00:00", "10:00:00"}
	cache.Invalidate(context.Background(), tid, "2024-06-03")

	slots, err := cache.BookedSlots(context.Background(), tid, "2024-06-03")
	require.NoError(t, err)
	assert.Len(t, slots, 2)
	assert.Equal(t, 2, src.calls)
}

func TestCacheDegradesWhenRedisDown(t *testing.T) {
	src := &fakeSource{slots: []string{"11:00:00"}}
	cache, mr := newTestCache(t, src)
	mr.Close()

	slots, err := cache.BookedSlots(context.Background(), uuid.New(), "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00:00"}, slots)
}

func TestCacheCorruptEntryFallsThrough(t *testing.T) {
	src := &fakeSource{slots: []string{"09:00:00"}}
	cache, mr := newTestCache(t, src)
	tid := uuid.New()
	mr.Set(slotKey(tid, "2024-06-03"), "not json")

	slots, err := cache.BookedSlots(context.Background(), tid, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00:00"}, slots)
	assert.Equal(t, 1, src.calls, "corrupt entry should fall back to the source")
}

func TestNilRedisAlwaysHitsSource(t *testing.T) {
	src := &fakeSource{slots: []string{"09:00:00"}}
	cache := NewBookedSlotsCache(src, nil, time.Minute, nil)

	for i := 0; i < 3; i++ {
		_, err := cache.BookedSlots(context.Background(), uuid.New(), "2024-06-03")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, src.calls)
}
