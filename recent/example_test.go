package recent_test

import (
	"context"
	"fmt"

	"github.com/jonwraymond/toolcatalog/recent"
)

func ExampleList_Add() {
	ctx := context.Background()
	list, _ := recent.NewList(recent.NewMemoryStore())

	_, _ = list.Add(ctx, "pdf-merge")
	_, _ = list.Add(ctx, "audio-trim")
	items, _ := list.Add(ctx, "pdf-merge")

	fmt.Println(items)
	// Output: [pdf-merge audio-trim]
}
