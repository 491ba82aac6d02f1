package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	"payment_tracker/internal/client/api"
	"payment_tracker/internal/client/cli"
	"payment_tracker/internal/client/config"
	"payment_tracker/internal/client/session"
	"payment_tracker/internal/client/tokenstore"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "path to a client.yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(lvl)
	}
	logrus.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := tokenstore.Open(ctx, cfg.TokenStore, cfg.TokenPath)
	if err != nil {
		logrus.Fatalf("open token store: %v", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	sess := session.New(store)
	client := api.New(cfg.APIURL, store,
		api.WithTimeout(cfg.Timeout),
		api.OnUnauthorized(session.Expire),
	)

	app := cli.NewApp(client, sess, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil {
		logrus.Errorf("%v", err)
	}
}

