// FILE: example/fasthttp/main.go
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dobrawek/drlogger"
	"github.com/dobrawek/drlogger/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	listener, err := drlogger.NewBuilder().
		Directory("/var/log/fasthttp").
		NamePrefix("http-").
		MaxFileSize("10MB").
		MaxFileCount(14).
		CleanupSchedule("@daily").
		Build()
	if err != nil {
		panic(err)
	}

	logger := drlogger.New(drlogger.WithListeners(listener))
	if err := logger.Start(context.Background()); err != nil {
		panic(err)
	}
	defer logger.Stop()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(drlogger.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:         "MyServer",
		Concurrency:  fasthttp.DefaultConcurrency,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		TCPKeepalive: true,
	}

	logger.Info("main", "Starting server on", ":8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Fatal("main", "server stopped", err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) (drlogger.Level, bool) {
	if strings.Contains(msg, "connection cannot be served") {
		return drlogger.LevelWarn, true
	}
	if strings.Contains(msg, "error when serving connection") {
		return drlogger.LevelError, true
	}
	return compat.DetectLogLevel(msg)
}
