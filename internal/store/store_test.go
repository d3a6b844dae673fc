package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"clubroster/internal/store"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMemoryRoundTrip(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	var out []doc
	found, err := st.Read(ctx, store.KeyStudents, &out)
	require.NoError(t, err)
	require.False(t, found)

	in := []doc{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	require.NoError(t, st.Write(ctx, store.KeyStudents, in))

	found, err = st.Read(ctx, store.KeyStudents, &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, in, out)
}

func TestMemoryWriteReplacesDocument(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, store.KeyUsers, []doc{{Name: "old"}}))
	require.NoError(t, st.Write(ctx, store.KeyUsers, []doc{{Name: "new"}}))

	var out []doc
	_, err := st.Read(ctx, store.KeyUsers, &out)
	require.NoError(t, err)
	require.Equal(t, []doc{{Name: "new"}}, out)
}

func TestFileRoundTrip(t *testing.T) {
	st, err := store.NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	var out doc
	found, err := st.Read(ctx, store.KeyAuth, &out)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, st.Write(ctx, store.KeyAuth, doc{Name: "session", Count: 7}))

	found, err = st.Read(ctx, store.KeyAuth, &out)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, doc{Name: "session", Count: 7}, out)
}

func TestFileKeysAreIndependent(t *testing.T) {
	st, err := store.NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, store.KeyStudents, []doc{{Name: "s"}}))
	require.NoError(t, st.Write(ctx, store.KeyAttendance, []doc{{Name: "a"}}))

	var students, attendance []doc
	_, err = st.Read(ctx, store.KeyStudents, &students)
	require.NoError(t, err)
	_, err = st.Read(ctx, store.KeyAttendance, &attendance)
	require.NoError(t, err)
	require.Equal(t, "s", students[0].Name)
	require.Equal(t, "a", attendance[0].Name)
}
