// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cl-spy is an interactive shell to a running cl-sim server.
//
// Usage: cl-spy [-addr localhost:8080]
//
// Commands:
//
//  step N            advance the device by N link cycles
//  send LINK HEX     drive a frame of hex bytes into a link
//  frames            list the frames captured so far
//  dump              show the words emitted on the dump port
//  status            show the device counters
//  quit              stop the session
package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/adamgreig/cl/sim"
)

func main() {
	log.SetPrefix("cl-spy: ")
	log.SetFlags(0)

	addr := flag.String("addr", "localhost:8080", "address of the cl-sim server")
	flag.Parse()

	err := run(*addr)
	if err != nil {
		log.Fatalf("could not run shell: %+v", err)
	}
}

func run(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not dial sim server %q: %w", addr, err)
	}
	defer conn.Close()

	term := liner.NewLiner()
	defer term.Close()
	term.SetCtrlCAborts(true)

	history := historyFile()
	if f, err := os.Open(history); err == nil {
		_, _ = term.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = term.WriteHistory(f)
			f.Close()
		}
	}()

	cli := &client{conn: conn, dec: json.NewDecoder(conn)}
	for {
		line, err := term.Prompt("cl> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("could not read line: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		term.AppendHistory(line)

		quit, err := cli.exec(line)
		if err != nil {
			log.Printf("error: %+v", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func historyFile() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".cl-spy.history"
	}
	return filepath.Join(dir, ".cl-spy.history")
}

type client struct {
	conn net.Conn
	dec  *json.Decoder
}

func (cli *client) exec(line string) (quit bool, err error) {
	args := strings.Fields(line)
	switch args[0] {
	case "help":
		fmt.Print(`commands:
 step N            advance the device by N link cycles
 send LINK HEX     drive a frame of hex bytes into a link
 frames            list the frames captured so far
 dump              show the words emitted on the dump port
 status            show the device counters
 quit              stop the session
`)
		return false, nil

	case "step":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: step N")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid cycle count %q: %w", args[1], err)
		}
		_, err = cli.cmd("step", map[string]int{"n": n})
		return false, err

	case "send":
		if len(args) != 3 {
			return false, fmt.Errorf("usage: send LINK HEX")
		}
		link, err := strconv.Atoi(args[1])
		if err != nil {
			return false, fmt.Errorf("invalid link %q: %w", args[1], err)
		}
		data, err := hex.DecodeString(args[2])
		if err != nil {
			return false, fmt.Errorf("invalid frame data %q: %w", args[2], err)
		}
		_, err = cli.cmd("send", map[string]interface{}{
			"link": link,
			"data": data,
		})
		return false, err

	case "frames":
		rep, err := cli.cmd("frames", nil)
		if err != nil {
			return false, err
		}
		var frames [][]byte
		if err := json.Unmarshal(rep.Data, &frames); err != nil {
			return false, fmt.Errorf("could not decode frames: %w", err)
		}
		for i, f := range frames {
			fmt.Printf("frame %d: %x\n", i, f)
		}
		return false, nil

	case "dump":
		rep, err := cli.cmd("dump", nil)
		if err != nil {
			return false, err
		}
		var words []byte
		if err := json.Unmarshal(rep.Data, &words); err != nil {
			return false, fmt.Errorf("could not decode dump words: %w", err)
		}
		fmt.Printf("dump: %x\n", words)
		return false, nil

	case "status":
		rep, err := cli.cmd("status", nil)
		if err != nil {
			return false, err
		}
		var st sim.Status
		if err := json.Unmarshal(rep.Data, &st); err != nil {
			return false, fmt.Errorf("could not decode status: %w", err)
		}
		fmt.Printf("sys cycles:  %d\n", st.SysCycles)
		fmt.Printf("link cycles: %d\n", st.LinkCycles)
		fmt.Printf("frames:      %d\n", st.Frames)
		fmt.Printf("dump words:  %d\n", st.DumpWords)
		fmt.Printf("led:         %v\n", st.LED)
		return false, nil

	case "quit":
		_, err := cli.cmd("quit", nil)
		return true, err
	}
	return false, fmt.Errorf("unknown command %q (try help)", args[0])
}

func (cli *client) cmd(name string, args interface{}) (sim.Reply, error) {
	req := struct {
		Name string      `json:"name"`
		Args interface{} `json:"args,omitempty"`
	}{Name: name, Args: args}

	err := json.NewEncoder(cli.conn).Encode(req)
	if err != nil {
		return sim.Reply{}, fmt.Errorf("could not send %q command: %w", name, err)
	}

	var rep sim.Reply
	err = cli.dec.Decode(&rep)
	if err != nil {
		return sim.Reply{}, fmt.Errorf("could not read %q reply: %w", name, err)
	}
	if rep.Msg != "ok" {
		return rep, fmt.Errorf("%s", rep.Msg)
	}
	return rep, nil
}
