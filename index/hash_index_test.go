package index

import (
	"testing"

	"heapdb/storage/page"
)

func TestPutGetDelete(t *testing.T) {
	h := New()
	if _, ok := h.Get(1); ok {
		t.Fatal("fresh index should not contain key 1")
	}

	h.Put(1, page.RID{PageID: 0, Slot: 3})
	rid, ok := h.Get(1)
	if !ok || rid.PageID != 0 || rid.Slot != 3 {
		t.Fatalf("Get(1) = (%+v, %v), want (0,3,true)", rid, ok)
	}
	if !h.Contains(1) {
		t.Fatal("Contains(1) should be true after Put")
	}

	h.Delete(1)
	if h.Contains(1) {
		t.Fatal("Contains(1) should be false after Delete")
	}
	if _, ok := h.Get(1); ok {
		t.Fatal("Get(1) should miss after Delete")
	}
}

func TestLen(t *testing.T) {
	h := New()
	h.Put(1, page.RID{})
	h.Put(2, page.RID{})
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	h.Delete(1)
	if h.Len() != 1 {
		t.Fatalf("Len() after delete = %d, want 1", h.Len())
	}
}

func TestFingerprintStableForSameRID(t *testing.T) {
	h := New()
	h.Put(5, page.RID{PageID: 2, Slot: 7})
	f1, ok1 := h.Fingerprint(5)
	f2, ok2 := h.Fingerprint(5)
	if !ok1 || !ok2 || f1 != f2 {
		t.Fatalf("fingerprint should be stable: %v %v %v %v", f1, ok1, f2, ok2)
	}
}

func TestFingerprintMissingKey(t *testing.T) {
	h := New()
	if _, ok := h.Fingerprint(42); ok {
		t.Fatal("fingerprint of absent key should report false")
	}
}
