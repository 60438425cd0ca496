package crawl

import (
	"container/heap"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/fwojciec/sitecrawl"
)

// Compile-time interface verification.
var _ sitecrawl.Frontier = (*Frontier)(nil)

// Order selects which queued href a Frontier pops next.
type Order int

// Supported pop orders.
const (
	// FIFO pops hrefs in discovery order (breadth-first).
	FIFO Order = iota
	// LIFO pops the most recently discovered href first (depth-first).
	LIFO
	// Random pops an arbitrary href.
	Random
	// Sorted pops the lexicographically smallest href.
	Sorted
)

// String returns the flag spelling of the order.
func (o Order) String() string {
	switch o {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case Random:
		return "random"
	case Sorted:
		return "sorted"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

// ParseOrder converts a flag value such as "lifo" into an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "random":
		return Random, nil
	case "sorted":
		return Sorted, nil
	}
	return FIFO, sitecrawl.Errorf(sitecrawl.EINVALID, "unknown frontier order %q", s)
}

// Frontier is an in-memory set of hrefs awaiting a visit.
// Pushing an href that is already queued is a no-op; once popped, an href may
// be pushed again (the crawler consults its visited set to prevent that).
//
// Frontier is not safe for concurrent use.
type Frontier struct {
	order  Order
	queued map[string]struct{}
	items  []string
	sorted *hrefHeap
	rand   *rand.Rand
}

// NewFrontier creates an empty Frontier that pops in the given order.
// Random order is seeded from the runtime's random source.
func NewFrontier(order Order) *Frontier {
	return newFrontier(order, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewSeededFrontier creates an empty Frontier with Random order whose pop
// sequence is fully determined by seed.
func NewSeededFrontier(seed uint64) *Frontier {
	return newFrontier(Random, rand.New(rand.NewPCG(seed, seed)))
}

func newFrontier(order Order, r *rand.Rand) *Frontier {
	f := &Frontier{
		order:  order,
		queued: make(map[string]struct{}),
		rand:   r,
	}
	if order == Sorted {
		f.sorted = &hrefHeap{}
		heap.Init(f.sorted)
	}
	return f
}

// Push adds href to the frontier.
// Returns false if href is already queued.
func (f *Frontier) Push(href string) bool {
	if _, ok := f.queued[href]; ok {
		return false
	}
	f.queued[href] = struct{}{}

	if f.order == Sorted {
		heap.Push(f.sorted, href)
	} else {
		f.items = append(f.items, href)
	}
	return true
}

// Pop removes and returns the next href.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if f.Len() == 0 {
		return "", false
	}

	var href string
	switch f.order {
	case Sorted:
		href, _ = heap.Pop(f.sorted).(string)
	case LIFO:
		href = f.items[len(f.items)-1]
		f.items = f.items[:len(f.items)-1]
	case Random:
		i := f.rand.IntN(len(f.items))
		href = f.items[i]
		last := len(f.items) - 1
		f.items[i] = f.items[last]
		f.items = f.items[:last]
	default:
		href = f.items[0]
		f.items[0] = ""
		f.items = f.items[1:]
	}

	delete(f.queued, href)
	return href, true
}

// Len returns the number of queued hrefs.
func (f *Frontier) Len() int {
	return len(f.queued)
}

// Contains reports whether href is currently queued.
func (f *Frontier) Contains(href string) bool {
	_, ok := f.queued[href]
	return ok
}

// hrefHeap implements heap.Interface as a min-heap of hrefs.
type hrefHeap []string

func (h hrefHeap) Len() int { return len(h) }

func (h hrefHeap) Less(i, j int) bool { return h[i] < h[j] }

func (h hrefHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *hrefHeap) Push(x any) {
	href, _ := x.(string)
	*h = append(*h, href)
}

func (h *hrefHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
