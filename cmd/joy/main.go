// main.go

// Copyright (C) 2020  Aircomm

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/GiovanniGrieco/joy"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	device := flag.String("device", "", "joystick device node, overrides the config")
	monitorAddr := flag.String("monitor", "", "listen address for the WebSocket monitor feed, overrides the config")
	flag.Parse()

	log.Println("This is Joy - Copyright 2020 Aircomm")

	cfg := joy.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = joy.LoadConfig(*configPath); err != nil {
			log.Fatalf("Config load failed - %v", err)
		}
	}
	if *device != "" {
		cfg.Joystick.Device = *device
	}
	if *monitorAddr != "" {
		cfg.Monitor.Listen = *monitorAddr
	}

	var stick *joy.Joystick
	var err error
	if cfg.Joystick.Device != "" {
		stick, err = joy.OpenJoystick(cfg.Joystick.Device)
	} else {
		stick, err = joy.OpenFirstJoystick()
	}
	if err != nil {
		log.Fatalf("Joystick init failed - %v", err)
	}
	defer stick.Close()
	log.Printf("Connected to %s\n", stick.Name())

	link, err := joy.DialLink(cfg.Drone.Addr, cfg.Drone.Port)
	if err != nil {
		log.Fatalf("Drone link failed - %v", err)
	}
	defer link.Close()

	ctrl, err := joy.NewController(cfg, stick, link)
	if err != nil {
		log.Fatalf("Controller init failed - %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctrl.Run(ctx)
}
