//go:build rp2040

package main

import (
	"context"
	"time"

	"hillside-go/bus"
	"hillside-go/keymaps/miryoku"
	"hillside-go/platform"
	"hillside-go/services/config"
	"hillside-go/services/heartbeat"
	"hillside-go/services/keyboard"
	"hillside-go/services/mcuctl"
)

const device = "hillside46"

func main() {
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, device)

	println("[main] bootstrapping bus …")
	b := bus.NewBus(4)
	mainConn := b.NewConnection("main")

	config.NewConfigService().Start(ctx, b.NewConnection("config"))

	cfg := config.AwaitKeyboard(ctx, mainConn, 2*time.Second)

	pins, ok := platform.BoardPins(cfg.Board)
	if !ok {
		println("[main] unknown board:", cfg.Board)
		halt()
	}
	board, err := platform.Open(pins, cfg)
	if err != nil {
		println("[main] platform:", err.Error())
		halt()
	}
	scanner, err := board.Matrix()
	if err != nil {
		println("[main] matrix:", err.Error())
		halt()
	}
	go board.RunLink(ctx)

	hw := keyboard.Hardware{
		Matrix:    scanner,
		LinkTX:    board.LinkTX(),
		LinkRX:    board.LinkRX(),
		USB:       board.USB(),
		Watchdog:  board.Watchdog(),
		SenseHigh: board.SenseHigh(),
		Overruns:  board.Overruns,
	}
	println("[main] starting services …")
	_ = mcuctl.New(board.Controller()).Start(ctx, b.NewConnection("mcu"))
	_ = (&heartbeat.Service{}).Start(ctx, b.NewConnection("heartbeat"))
	_ = keyboard.New(hw, miryoku.Layers).Start(ctx, b.NewConnection("kb"))

	select {}
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
