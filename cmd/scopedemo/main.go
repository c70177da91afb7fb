package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/AndrewHarrisSPU/scopelog"
	"golang.org/x/exp/slog"
)

var errCorrupt = errors.New("corrupt page")

func main() {
	Execute()
}

// serve runs requests concurrently, each on its own flow.
func serve(ctx context.Context, log *scopelog.Logger, requests int) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var wg sync.WaitGroup
	for id := range requests {
		wg.Add(1)
		go func(ctx context.Context) {
			defer wg.Done()
			handle(ctx, log, id)
		}(scopelog.Fork(ctx))
	}
	wg.Wait()

	return nil
}

func handle(ctx context.Context, log *scopelog.Logger, id int) {
	ctx, end := log.BeginScope(ctx, slog.Int("request", id))
	defer end()

	log.Info(ctx, "handling")

	if err := fetch(ctx, log, fmt.Sprintf("doc-%d", id)); err != nil {
		log.Error(ctx, "request failed", err)
		return
	}
	log.Info(ctx, "done")
}

func fetch(ctx context.Context, log *scopelog.Logger, doc string) error {
	ctx, end := log.BeginScope(ctx, slog.String("doc", doc))
	defer end()

	suspend()

	for page := 1; page <= 3; page++ {
		if err := read(ctx, log, page); err != nil {
			return scopelog.Wrap(ctx, err, "fetch "+doc)
		}
	}
	return nil
}

func read(ctx context.Context, log *scopelog.Logger, page int) error {
	ctx, end := log.BeginScope(ctx, slog.Int("page", page))
	defer end()

	// resume elsewhere
	done := make(chan error)
	go func() {
		suspend()
		log.Debug(ctx, "reading")
		if rand.Intn(3) == 0 {
			done <- scopelog.Errorf(ctx, "page %d: %w", page, errCorrupt)
			return
		}
		done <- nil
	}()
	return <-done
}

func suspend() {
	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
}
