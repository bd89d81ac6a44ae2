package manifest

import (
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/grailbio/stark/spatial"
)

func rect(t *testing.T, minX, minY, maxX, maxY float64) spatial.NRectRange {
	t.Helper()
	r, err := spatial.NewRect(spatial.NPoint{minX, minY}, spatial.NPoint{maxX, maxY})
	assert.NoError(t, err)
	return r
}

func int64p(v int64) *int64 { return &v }

func TestWriteThenReadRoundTrips(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	path := filepath.Join(tmpdir, FileName)

	entries := []Entry{
		{Envelope: rect(t, 0, 0, 5, 5), Start: int64p(100), End: int64p(200), PartFile: "part-0.dat"},
		{Envelope: rect(t, 5, 0, 10, 5), Start: nil, End: nil, PartFile: "part-1.dat"},
		{Envelope: rect(t, 0, 5, 10, 10), Start: int64p(0), End: nil, PartFile: "part-2.dat"},
	}

	assert.NoError(t, Write(ctx, path, entries))

	got, ok, err := Read(ctx, path)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, got, 3)

	for i, want := range entries {
		assert.True(t, want.Envelope.Equal(got[i].Envelope), "entry %d envelope", i)
		assert.Equal(t, want.PartFile, got[i].PartFile, "entry %d partFile", i)
		if want.Start == nil {
			assert.Nil(t, got[i].Start, "entry %d start", i)
		} else {
			assert.Equal(t, *want.Start, *got[i].Start, "entry %d start", i)
		}
		if want.End == nil {
			assert.Nil(t, got[i].End, "entry %d end", i)
		} else {
			assert.Equal(t, *want.End, *got[i].End, "entry %d end", i)
		}
	}
}

func TestReadMissingManifestMeansReadEverything(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()
	path := filepath.Join(tmpdir, FileName)

	entries, ok, err := Read(ctx, path)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, entries)
}

func TestWKTRoundTrip(t *testing.T) {
	r := rect(t, -73, 40.5, -70, 41)
	wkt, err := formatWKT(r)
	assert.NoError(t, err)
	assert.Contains(t, wkt, "POLYGON((")

	back, err := parseWKT(wkt)
	assert.NoError(t, err)
	assert.True(t, r.Equal(back))
}
