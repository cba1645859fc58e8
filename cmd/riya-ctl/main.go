package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/pflag"

	"github.com/rog05/voice-agent/internal/ipc"
)

func main() {
	socket := cli.StringP("socket", "s", "/tmp/riya.sock", "Daemon control socket")
	cli.Parse()

	cmd := cli.Arg(0)
	if cmd == "" {
		fmt.Println("usage: riya-ctl [--socket path] <stop|stats>")
		os.Exit(1)
	}

	reply, err := ipc.SendCommand(*socket, cmd)
	if err != nil {
		fmt.Println("riya daemon not running:", err)
		os.Exit(1)
	}

	if !reply.OK {
		fmt.Println("error:", reply.Detail)
		os.Exit(1)
	}
	if reply.Detail != "" {
		fmt.Println(reply.Detail)
	}
}
