package main

import (
	"context"
	"time"

	"gd32h7-usart/board"
	"gd32h7-usart/console"
	"gd32h7-usart/platform"
	"gd32h7-usart/services/heartbeat"
	"gd32h7-usart/x/conv"
	"gd32h7-usart/x/fmtx"
)

func main() {
	port, err := console.Init(platform.Bus(), board.Enabled())
	if err != nil {
		// No console yet; println goes to the runtime's default output.
		println("console init failed:", err.Error())
		return
	}
	fmtx.DefaultOutput = port

	u := port.UART()
	fmtx.Printf("boot: %s on %s tx=%s rx=%s %d 8N1\r\n", u.Name, conv.Addr(u.Periph), u.TX, u.RX, console.Baud)

	hb := &heartbeat.Service{Out: port, Interval: heartbeat.DefaultInterval}
	if err := hb.Start(context.Background()); err != nil {
		println("heartbeat:", err.Error())
		return
	}
	for {
		time.Sleep(time.Hour)
	}
}
