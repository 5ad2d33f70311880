package local_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finvoice/internal/port"
	"finvoice/internal/storage/local"
)

func TestLocalStorage_SaveReadDelete(t *testing.T) {
	store, err := local.New(t.TempDir(), "uploads", "renders")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := store.Save(ctx, port.SaveInput{
		Key:         "uploads/test.pdf",
		Body:        strings.NewReader("%PDF-1.7 content"),
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/test.pdf", key)

	data, err := store.Read(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 content", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Read(ctx, key)
	assert.Error(t, err)
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := local.New(t.TempDir(), "uploads", "renders")
	require.NoError(t, err)

	_, err = store.Read(context.Background(), "../outside")
	assert.Error(t, err)

	_, err = store.Save(context.Background(), port.SaveInput{
		Key:  "/etc/passwd",
		Body: strings.NewReader("x"),
	})
	assert.Error(t, err)
}

func TestLocalStorage_Usage(t *testing.T) {
	store, err := local.New(t.TempDir(), "uploads", "renders")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Save(ctx, port.SaveInput{Key: "uploads/a.pdf", Body: strings.NewReader("12345")})
	require.NoError(t, err)
	_, err = store.Save(ctx, port.SaveInput{Key: "renders/b.html", Body: strings.NewReader("1234567890")})
	require.NoError(t, err)

	usage, err := store.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), usage.UploadsBytes)
	assert.Equal(t, int64(10), usage.RendersBytes)
	assert.Equal(t, int64(15), usage.TotalBytes)
	assert.Equal(t, 2, usage.FileCount)
}
