package library

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleRecord = `@inproceedings{CMT12,
  author = {C. and M. and T.},
  title = {{Some Paper With  Odd   Spacing}},
  year = {2012},
}
`

func TestBibKey(t *testing.T) {
	t.Parallel()

	key, err := BibKey([]byte(sampleRecord))
	require.NoError(t, err)
	require.Equal(t, "CMT12", key)
}

func TestBibKeyNoEntry(t *testing.T) {
	t.Parallel()

	for _, record := range []string{"", "just text", "@commentonly"} {
		_, err := BibKey([]byte(record))
		require.ErrorIs(t, err, ErrBibNoEntry, "record %q", record)
	}
}

func TestSyncBibKeyRewritesOnlyTheKey(t *testing.T) {
	t.Parallel()

	updated, changed, err := SyncBibKey([]byte(sampleRecord), "CMT12x")
	require.NoError(t, err)
	require.True(t, changed)

	// Every byte except the key round-trips.
	want := strings.Replace(sampleRecord, "CMT12,", "CMT12x,", 1)
	require.Equal(t, want, string(updated))
}

func TestSyncBibKeyIdempotent(t *testing.T) {
	t.Parallel()

	updated, changed, err := SyncBibKey([]byte(sampleRecord), "CMT12")
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, sampleRecord, string(updated))
}

func TestEnsureDateAddedInsertsAfterHeader(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)

	updated, changed := EnsureDateAdded([]byte(sampleRecord), now)
	require.True(t, changed)

	require.Contains(t, string(updated), "@inproceedings{CMT12,\n  ckdateadded = {2026-08-27 10:30:00},\n")

	// The original payload is still intact byte-for-byte.
	require.Contains(t, string(updated), "title = {{Some Paper With  Odd   Spacing}}")
}

func TestEnsureDateAddedIgnoresSubstringInPayload(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)

	// The field name appearing inside an opaque field value must not
	// suppress the insertion.
	record := "@article{CMT12,\n  title = {The ckdateadded Chronicles},\n}\n"

	updated, changed := EnsureDateAdded([]byte(record), now)
	require.True(t, changed)

	require.Contains(t, string(updated), "ckdateadded = {2026-08-27 10:30:00},")
	require.Contains(t, string(updated), "title = {The ckdateadded Chronicles}")

	added, ok := DateAdded(updated)
	require.True(t, ok)
	require.Equal(t, "2026-08-27 10:30:00", added)
}

func TestEnsureDateAddedIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)

	once, _ := EnsureDateAdded([]byte(sampleRecord), now)
	twice, changed := EnsureDateAdded(once, now.Add(time.Hour))

	require.False(t, changed)
	require.Equal(t, string(once), string(twice))
}

func TestDateAdded(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)
	record, _ := EnsureDateAdded([]byte(sampleRecord), now)

	added, ok := DateAdded(record)
	require.True(t, ok)
	require.Equal(t, "2026-08-27 10:30:00", added)

	_, ok = DateAdded([]byte(sampleRecord))
	require.False(t, ok)
}

func TestSyncBibFile(t *testing.T) {
	t.Parallel()

	store, _ := newTestLibrary(t)
	writeBib(t, store, "ABC19")

	// Plant a mismatched entry key, as a hand-edited record might have.
	record := strings.Replace(sampleRecord, "CMT12", "WrongKey", 1)
	writeFile(t, store.BibPath("ABC19"), record)

	changed, err := SyncBibFile(store.BibPath("ABC19"), "ABC19")
	require.NoError(t, err)
	require.True(t, changed)

	key, keyErr := BibKey([]byte(mustReadFile(t, store.BibPath("ABC19"))))
	require.NoError(t, keyErr)
	require.Equal(t, "ABC19", key)

	// Second run is a no-op.
	changed, err = SyncBibFile(store.BibPath("ABC19"), "ABC19")
	require.NoError(t, err)
	require.False(t, changed)
}
