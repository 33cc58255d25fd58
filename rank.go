package drawmatch

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"sync"
)

// Match is the result of comparing a drawing against one named reference.
type Match struct {
	Name     string
	Distance float64
}

// Rank compares drawing against every reference and returns the results
// ordered from best (smallest distance) to worst, ties broken by name.
//
// Comparisons run concurrently on up to opts.Workers goroutines. The drawing
// is tessellated and normalized once and shared; references are only read,
// and must not be modified until Rank returns. If ctx is canceled, Rank stops
// scheduling comparisons and returns the context's error.
func Rank(ctx context.Context, drawing Drawing, refs map[string]Drawing, opts Options) ([]Match, error) {
	opts = opts.withDefaults()
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	names := make([]string, 0, len(refs))
	for name := range refs {
		names = append(names, name)
	}
	slices.Sort(names)
	if workers > len(names) {
		workers = len(names)
	}

	a := Normalize(drawing.Points(opts))
	out := make([]Match, len(names))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				d := Unbounded
				if len(a.Points) > 0 {
					if pts := refs[names[i]].Points(opts); len(pts) > 0 {
						d = Distance(a, Normalize(pts))
					}
				}
				out[i] = Match{Name: names[i], Distance: d}
			}
		}()
	}

	var err error
feed:
	for i := range names {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, fmt.Errorf("ranking drawing against %d references: %w", len(names), err)
	}

	slices.SortStableFunc(out, func(x, y Match) int {
		return cmp.Or(cmp.Compare(x.Distance, y.Distance), cmp.Compare(x.Name, y.Name))
	})
	return out, nil
}
