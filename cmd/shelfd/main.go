package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/bookshelf/internal/memcollection"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":8080", "listen address")
	path := flag.String("path", memcollection.DefaultPath, "collection route")
	seed := flag.Bool("seed", false, "pre-populate the collection with example books")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serve(ctx, *addr, *path, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "shelfd: %v\n", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, addr, path string, seed bool) error {
	store := memcollection.NewStore(nil)
	if seed {
		store = memcollection.NewStore(memcollection.SeedData())
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           memcollection.NewHandler(store, path),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("serving %d books at %s%s", store.Len(), addr, path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Printf("stopped")
	return nil
}
