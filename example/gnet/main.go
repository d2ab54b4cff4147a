// FILE: example/gnet/main.go
package main

import (
	"github.com/dobrawek/drlogger"
	"github.com/dobrawek/drlogger/compat"
	"github.com/panjf2000/gnet/v2"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg := drlogger.DefaultConfig()
	cfg.Directory = "/var/log/gnet"
	cfg.NamePrefix = "gnet-"
	cfg.MinLevel = "debug"

	// The builder starts the logger and runs retention once
	builder := compat.NewBuilder().WithConfig(cfg)
	gnetAdapter, err := builder.BuildGnet(compat.WithGnetTag("echo"))
	if err != nil {
		panic(err)
	}
	logger, _ := builder.GetLogger()
	defer logger.Stop()

	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		logger.Error("echo", "gnet stopped", err)
	}
}
