package cache_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/toolcatalog/cache"
)

func ExampleLoader_Get() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loads := 0

	l, _ := cache.NewLoader(func(context.Context) (int, error) {
		loads++
		return loads * 10, nil
	}, cache.WithTTL(time.Minute), cache.WithClock(func() time.Time { return now }))

	ctx := context.Background()
	v, outcome, _ := l.Get(ctx)
	fmt.Println(v, outcome)

	v, outcome, _ = l.Get(ctx)
	fmt.Println(v, outcome)

	now = now.Add(2 * time.Minute)
	v, outcome, _ = l.Get(ctx)
	fmt.Println(v, outcome)
	// Output:
	// 10 miss
	// 10 hit
	// 20 stale
}
