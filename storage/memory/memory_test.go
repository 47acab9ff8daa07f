package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAssignsKeyAndURL(t *testing.T) {
	b := New()
	ctx := context.Background()

	obj, err := b.Store(ctx, "uploads", "cover.PNG", "image/png", strings.NewReader("payload"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(obj.Key, "uploads/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"), "extension is lowercased")
	assert.Equal(t, "memory://"+obj.Key, obj.URL)
	assert.Equal(t, 1, b.Len())
}

func TestStoreWithoutFolder(t *testing.T) {
	b := New()

	obj, err := b.Store(context.Background(), "", "cover.png", "image/png", strings.NewReader("payload"))
	require.NoError(t, err)
	assert.NotContains(t, obj.Key, "/")
}

func TestOpenRoundTrip(t *testing.T) {
	b := New()
	ctx := context.Background()

	obj, err := b.Store(ctx, "uploads", "cover.png", "image/png", strings.NewReader("payload"))
	require.NoError(t, err)

	rc, err := b.Open(ctx, obj.Key)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestRemove(t *testing.T) {
	b := New()
	ctx := context.Background()

	obj, err := b.Store(ctx, "uploads", "cover.png", "image/png", strings.NewReader("payload"))
	require.NoError(t, err)

	require.NoError(t, b.Remove(ctx, obj.Key))
	assert.Equal(t, 0, b.Len())

	_, err = b.Open(ctx, obj.Key)
	assert.Error(t, err)

	assert.Error(t, b.Remove(ctx, obj.Key), "double remove reports a missing object")
}

func TestOpenUnknownKey(t *testing.T) {
	b := New()

	_, err := b.Open(context.Background(), "uploads/missing.png")
	assert.Error(t, err)
}
