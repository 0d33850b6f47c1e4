package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "http://cdn.test/files/"})
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newLocal(t)

	body := "hello"
	require.NoError(t, s.Save(ctx, "posts", "user-1/1700000000000.jpg", strings.NewReader(body), int64(len(body)), "image/jpeg"))

	ok, err := s.Exists(ctx, "posts", "user-1/1700000000000.jpg")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Get(ctx, "posts", "user-1/1700000000000.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, body, string(data))

	require.NoError(t, s.Delete(ctx, "posts", "user-1/1700000000000.jpg"))
	require.NoError(t, s.Delete(ctx, "posts", "user-1/1700000000000.jpg"))

	_, err = s.Get(ctx, "posts", "user-1/1700000000000.jpg")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_ListAndDeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := newLocal(t)

	for _, p := range []string{"user-1/1.png", "user-1/2.mp4", "user-2/3.png"} {
		require.NoError(t, s.Save(ctx, "posts", p, strings.NewReader("x"), 1, ""))
	}

	objs, err := s.List(ctx, "posts", "user-1/")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "user-1/1.png", objs[0].Path)
	assert.Equal(t, "image/png", objs[0].ContentType)
	assert.Equal(t, int64(1), objs[0].Size)

	empty, err := s.List(ctx, "avatars", "user-1/")
	require.NoError(t, err)
	assert.Empty(t, empty)

	n, err := s.DeletePrefix(ctx, "posts", "user-1/")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rest, err := s.List(ctx, "posts", "")
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "user-2/3.png", rest[0].Path)
}

func TestLocalStorage_URLs(t *testing.T) {
	s := newLocal(t)
	assert.Equal(t, "http://cdn.test/files/posts/user-1/a.png", s.GetURL("posts", "user-1/a.png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newLocal(t)

	err := s.Save(ctx, "posts", "../escape.txt", strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidPath)

	err = s.Save(ctx, "../posts", "a.txt", strings.NewReader("x"), 1, "")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestNewStorage_UnknownType(t *testing.T) {
	_, err := NewStorage(Config{Type: "ftp"})
	assert.Error(t, err)
}
