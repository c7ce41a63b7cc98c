package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/naca456/internal/api"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		rateLimit   float64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the airfoil REST API",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read header timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Float64Flag{
				Name:        "rate-limit",
				Usage:       "generate requests per second (0 = unlimited)",
				Destination: &rateLimit,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx, cfg, log := setup(ctx, cmd)
			applyServeConfig(cmd, cfg, &addr, &rateLimit)
			eng, err := newEngine(cmd, cfg, log)
			if err != nil {
				return err
			}

			server := api.NewServer(eng, api.NewAirfoilStore(), api.Options{
				RateLimit: rateLimit,
				Registry:  api.NewRegistry(),
				Logger:    log,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "root", eng.Config().Root)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
