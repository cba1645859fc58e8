// Package ipc is the unix-socket control channel for the running daemon.
package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
)

// ControlMessage is one command from riya-ctl.
type ControlMessage struct {
	Cmd string `json:"cmd"`
}

// Reply is the daemon's answer to a control command.
type Reply struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// StartServer listens on the socket and dispatches each command to handler.
func StartServer(socketPath string, handler func(ControlMessage) Reply) error {
	os.Remove(socketPath)

	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				continue
			}
			go handleConn(conn, handler)
		}
	}()

	return nil
}

func handleConn(conn net.Conn, handler func(ControlMessage) Reply) {
	defer conn.Close()

	var msg ControlMessage
	if err := json.NewDecoder(conn).Decode(&msg); err != nil {
		return
	}

	reply := handler(msg)
	_ = json.NewEncoder(conn).Encode(reply)
}

// SendCommand connects to the daemon, sends one command and waits for the reply.
func SendCommand(socketPath, cmd string) (Reply, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return Reply{}, err
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ControlMessage{Cmd: cmd}); err != nil {
		return Reply{}, err
	}

	var reply Reply
	if err := json.NewDecoder(conn).Decode(&reply); err != nil {
		return Reply{}, err
	}
	return reply, nil
}
