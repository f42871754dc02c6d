package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hushbox/hushauth"
	"github.com/hushbox/hushauth/core"
	"github.com/hushbox/hushauth/db/zombiezen"
)

func main() {
	dbfile := flag.String("dbfile", "hushauth.db", "Path to the SQLite account database")
	configFile := flag.String("config", "", "Path to the TOML configuration file (defaults apply when omitted)")
	jsonLog := flag.Bool("jsonlog", false, "Log JSON to stderr instead of text to stdout")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nStarts the authentication server.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	pool, err := hushauth.NewZombiezenPool(*dbfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database %s: %v\n", *dbfile, err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := zombiezen.Migrate(context.Background(), pool); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate database %s: %v\n", *dbfile, err)
		os.Exit(1)
	}

	opts := []core.Option{hushauth.WithZombiezenPool(pool)}
	if *jsonLog {
		opts = append(opts, hushauth.WithPhusLogger(nil))
	}

	_, srv, err := hushauth.New(*configFile, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	srv.Run()
}
