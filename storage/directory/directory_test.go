package directory

import (
	"os"
	"path/filepath"
	"testing"

	"heapdb/internal/config"
	"heapdb/internal/testutil"
)

func TestAddPageDensity(t *testing.T) {
	d := New()
	for i := 0; i < 4; i++ {
		d.AddPage(PageInfo{Offset: int64(i) * config.PageSize, FreeSlots: config.SlotCount})
	}
	for i, p := range d.GetPages() {
		if p.Offset != int64(i)*config.PageSize {
			t.Fatalf("page %d offset = %d, want %d", i, p.Offset, int64(i)*config.PageSize)
		}
	}
}

func TestUpdatePageInfo(t *testing.T) {
	d := New()
	d.AddPage(PageInfo{Offset: 0, FreeSlots: config.SlotCount})
	d.UpdatePageInfo(PageInfo{Offset: 0, FreeSlots: config.SlotCount - 1})
	if got := d.GetPages()[0].FreeSlots; got != config.SlotCount-1 {
		t.Fatalf("free slots = %d, want %d", got, config.SlotCount-1)
	}
}

func TestUpdatePageInfoUnknownOffsetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown offset")
		}
	}()
	d := New()
	d.UpdatePageInfo(PageInfo{Offset: 999, FreeSlots: 0})
}

func TestByteRoundTrip(t *testing.T) {
	d := New()
	d.AddPage(PageInfo{Offset: 0, FreeSlots: 10})
	d.AddPage(PageInfo{Offset: config.PageSize, FreeSlots: 32})

	decoded, err := FromBytes(d.ToBytes())
	testutil.RequireNoError(t, err)
	testutil.RequireTrue(t, len(decoded.GetPages()) == 2, "got %d pages, want 2", len(decoded.GetPages()))
	for i, p := range decoded.GetPages() {
		if p != d.GetPages()[i] {
			t.Fatalf("page %d = %+v, want %+v", i, p, d.GetPages()[i])
		}
	}
}

func TestFromBytesTruncated(t *testing.T) {
	if _, err := FromBytes([]byte{1, 2}); err == nil {
		t.Fatal("expected error decoding truncated header")
	}
	if _, err := FromBytes([]byte{2, 0, 0, 0}); err == nil {
		t.Fatal("expected error decoding truncated body")
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "does-not-exist.dir"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.GetPages()) != 0 {
		t.Fatalf("got %d pages, want 0", len(d.GetPages()))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.dir")
	d := New()
	d.AddPage(PageInfo{Offset: 0, FreeSlots: 1})
	d.AddPage(PageInfo{Offset: config.PageSize, FreeSlots: 2})
	testutil.RequireNoError(t, d.Save(path))

	loaded, err := Load(path)
	testutil.RequireNoError(t, err)
	testutil.RequireTrue(t, len(loaded.GetPages()) == 2, "got %d pages, want 2", len(loaded.GetPages()))

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sidecar file missing: %v", err)
	}
}
