// Copyright 2026 The cl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// server exposes a simulated device over a TCP command socket. Each
// connection gets a fresh device.
type server struct {
	ctl net.Listener
	msg *log.Logger

	newDevice func(opts ...Option) (*Device, error)
	opts      []Option
}

// Serve listens on addr and serves simulated devices until the
// context is cancelled.
func Serve(ctx context.Context, addr string, opts ...Option) error {
	srv, err := newServer(addr, opts...)
	if err != nil {
		return fmt.Errorf("could not create sim server: %w", err)
	}
	return srv.serve(ctx)
}

func newServer(addr string, opts ...Option) (*server, error) {
	ctl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not listen on %q: %w", addr, err)
	}
	return &server{
		ctl:       ctl,
		msg:       log.New(os.Stdout, "sim-svc: ", 0),
		newDevice: New,
		opts:      opts,
	}, nil
}

func (srv *server) serve(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		<-ctx.Done()
		return srv.ctl.Close()
	})
	grp.Go(func() error {
		for {
			conn, err := srv.ctl.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("could not accept connection: %w", err)
			}
			err = srv.handle(conn)
			if err != nil {
				srv.msg.Printf("could not serve device: %+v", err)
			}
		}
	})
	return grp.Wait()
}

func (srv *server) handle(conn net.Conn) error {
	defer conn.Close()
	srv.msg.Printf("serving %v...", conn.RemoteAddr())
	defer srv.msg.Printf("serving %v... [done]", conn.RemoteAddr())

	dev, err := srv.newDevice(srv.opts...)
	if err != nil {
		srv.reply(conn, err, nil)
		return fmt.Errorf("could not create device: %w", err)
	}

loop:
	for {
		var req struct {
			Name string           `json:"name"`
			Args *json.RawMessage `json:"args"`
		}

		err := json.NewDecoder(conn).Decode(&req)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break loop
			}
			srv.msg.Printf("could not decode command request: %+v", err)
			srv.reply(conn, err, nil)
			continue
		}

		switch strings.ToLower(req.Name) {
		case "step":
			var args struct {
				N int `json:"n"`
			}
			if err := srv.decode(conn, req.Args, &args); err != nil {
				continue
			}
			if args.N < 1 {
				srv.reply(conn, fmt.Errorf("invalid step count %d", args.N), nil)
				continue
			}
			dev.Step(args.N)
			srv.reply(conn, nil, nil)

		case "send":
			var args struct {
				Link int    `json:"link"`
				Data []byte `json:"data"`
			}
			if err := srv.decode(conn, req.Args, &args); err != nil {
				continue
			}
			srv.reply(conn, dev.SendFrame(args.Link, args.Data), nil)

		case "frames":
			srv.reply(conn, nil, dev.Frames())

		case "dump":
			srv.reply(conn, nil, dev.DumpWords())

		case "status":
			srv.reply(conn, nil, dev.Status())

		case "quit":
			srv.reply(conn, nil, nil)
			break loop

		default:
			srv.msg.Printf("unknown command name=%q", req.Name)
			srv.reply(conn, fmt.Errorf("unknown command %q", req.Name), nil)
		}
	}

	return nil
}

func (srv *server) decode(conn net.Conn, raw *json.RawMessage, args interface{}) error {
	if raw == nil {
		err := fmt.Errorf("missing command arguments")
		srv.reply(conn, err, nil)
		return err
	}
	err := json.Unmarshal(*raw, args)
	if err != nil {
		srv.msg.Printf("could not decode command payload: %+v", err)
		srv.reply(conn, err, nil)
	}
	return err
}

// Reply is the server response to one command.
type Reply struct {
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (srv *server) reply(conn net.Conn, err error, data interface{}) {
	rep := Reply{Msg: "ok"}
	if err != nil {
		rep.Msg = fmt.Sprintf("%+v", err)
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			rep.Msg = fmt.Sprintf("could not encode reply data: %+v", err)
		} else {
			rep.Data = raw
		}
	}
	_ = json.NewEncoder(conn).Encode(rep)
}
