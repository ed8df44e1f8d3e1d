// Command shapec-server boots the gRPC assignability façade
// (internal/rpcservice), optionally backed by a SQLite query cache
// (internal/cache).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shapelang/shapec/internal/cache"
	"github.com/shapelang/shapec/internal/config"
	"github.com/shapelang/shapec/internal/rpcservice"
	"github.com/shapelang/shapec/internal/types"
)

func main() {
	addr := flag.String("addr", ":7443", "address to listen on")
	cachePath := flag.String("cache", os.Getenv("SHAPEC_CACHE_PATH"), "optional SQLite cache path")
	flag.Parse()

	descriptors, err := rpcservice.LoadDescriptors()
	if err != nil {
		log.Fatalf("shapec-server: %v", err)
	}

	var checker rpcservice.Checker = types.Assign

	if *cachePath != "" {
		c, err := cache.Open(context.Background(), *cachePath)
		if err != nil {
			log.Fatalf("shapec-server: %v", err)
		}
		defer c.Close()
		checker = func(l, r types.Type, loc types.SourceLoc, cfg config.Config) error {
			return c.CheckCached(context.Background(), l, r, loc, cfg)
		}
	}

	server := rpcservice.NewServer(descriptors, checker)
	fmt.Printf("shapec-server: listening on %s\n", *addr)
	if err := server.Serve(*addr); err != nil {
		log.Fatalf("shapec-server: %v", err)
	}
}
