// heapdemo runs a handful of the end-to-end scenarios spec.md §8
// describes against a real HeapFile and prints the resulting
// buffer-pool counters. It is an external collaborator, not a library
// entry point: a thin runnable driver in the spirit of the teacher's
// main/main.go, which does the same for its own engine.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"heapdb/heap"
	"heapdb/internal/config"
	"heapdb/record"
	"heapdb/storage/buffer"
	"heapdb/storage/disk"
)

func main() {
	evictionUnderLRU()
	mruVsLRUHotKey()
	skewedWorkload()
}

// evictionUnderLRU mirrors spec.md §8 scenario 1: pool size 2, two full
// pages resident, a third insertion evicts the least-recently-touched
// page.
func evictionUnderLRU() {
	fmt.Println("=== eviction under LRU, pool size 2 ===")
	h, _ := openDemoHeap("lru", 2, buffer.NewLRU())

	for k := int32(1); k <= 2*config.SlotCount; k++ {
		mustInsert(h, k)
	}
	h.Buffer().ResetCounters()

	if _, ok, _ := h.SearchRecord(1); ok {
		fmt.Println("search(1): hit, as expected with both pages resident")
	}
	if _, ok, _ := h.SearchRecord(config.SlotCount + 1); ok {
		fmt.Println("search(page-1 key): hit")
	}

	mustInsert(h, 2*config.SlotCount+1)
	h.Buffer().ResetCounters()
	if _, ok, _ := h.SearchRecord(1); !ok {
		fmt.Println("search(1) after third page allocated: unexpectedly absent")
	}
	fmt.Printf("misses after re-fetching evicted page: %d, final pool size: %d\n\n",
		h.Buffer().MissCount(), h.Buffer().CurrentPoolSize())
}

// mruVsLRUHotKey mirrors spec.md §8 scenario 2: a pre-warmed pool with
// plenty of headroom, then 100 repeated lookups of one hot key.
func mruVsLRUHotKey() {
	fmt.Println("=== MRU vs LRU on a repeated hot key ===")
	const poolSize = 16
	totalKeys := int32((poolSize - 2) * config.SlotCount)

	for _, policy := range []buffer.ReplacementPolicy{buffer.NewLRU(), buffer.NewMRU()} {
		h, _ := openDemoHeap(policy.Name(), poolSize, policy)
		for k := int32(0); k < totalKeys; k++ {
			mustInsert(h, k)
		}
		h.SearchRecord(totalKeys - 1) // pre-warm: touch every page
		h.Buffer().ResetCounters()

		for i := 0; i < 100; i++ {
			h.SearchRecord(totalKeys / 2)
		}
		fmt.Printf("%s: hits=%d misses=%d hit_ratio=%.3f\n",
			policy.Name(), h.Buffer().HitCount(), h.Buffer().MissCount(), h.Buffer().HitRatio())
	}
	fmt.Println()
}

// skewedWorkload mirrors spec.md §8 scenario 3: an 80/20 skew over a
// small hot set and a larger cold set, comparing LRU, MRU, and CLOCK.
func skewedWorkload() {
	fmt.Println("=== skewed 80/20 workload ===")
	const poolSize = 16
	const hotKeys = 128
	const coldKeys = 1024
	const accesses = 1000

	for _, policy := range []buffer.ReplacementPolicy{buffer.NewLRU(), buffer.NewMRU(), buffer.NewClock(poolSize)} {
		h, _ := openDemoHeap(policy.Name(), poolSize, policy)
		for k := int32(0); k < hotKeys+coldKeys; k++ {
			mustInsert(h, k)
		}
		h.Buffer().ResetCounters()

		for i := 0; i < accesses; i++ {
			var key int32
			if i%5 != 0 {
				key = int32(i % hotKeys)
			} else {
				key = hotKeys + int32(i%coldKeys)
			}
			h.SearchRecord(key)
		}
		fmt.Printf("%-4s: hit_ratio=%.3f (hits=%d misses=%d)\n",
			policy.Name(), h.Buffer().HitRatio(), h.Buffer().HitCount(), h.Buffer().MissCount())
	}
	fmt.Println()
}

func mustInsert(h *heap.HeapFile, key int32) {
	if err := h.InsertRecord(record.New(key, nil)); err != nil {
		fmt.Fprintf(os.Stderr, "insert %d: %v\n", key, err)
		os.Exit(1)
	}
}

func openDemoHeap(label string, poolSize int, policy buffer.ReplacementPolicy) (*heap.HeapFile, string) {
	dir, err := os.MkdirTemp("", "heapdemo-"+label)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkdtemp: %v\n", err)
		os.Exit(1)
	}
	h, err := heap.OpenWithDisk(disk.NewMemManager(), filepath.Join(dir, "demo.dir"), poolSize, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open heap: %v\n", err)
		os.Exit(1)
	}
	return h, dir
}
