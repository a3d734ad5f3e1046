// Package board holds the console UART table. Which entries are enabled is a
// build-time choice: each bsp_using_uartN tag turns on uartN, and with no tag
// the board default (uart1) is used.
package board

import (
	"gd32h7-usart/drivers/gd32h7"
	"gd32h7-usart/x/strconvx"
)

// UART describes one wired serial instance.
type UART struct {
	Name   string      // "uart1".."uart5"; the number selects the pin AF
	Periph uint32      // register block base address
	IRQ    gd32h7.IRQn // interrupt line (recorded, unused by polled bring-up)
	TX, RX string      // pin names, e.g. "PA9"
}

// Number returns N from a "uartN" name.
func (u UART) Number() (int, bool) {
	const prefix = "uart"
	if len(u.Name) <= len(prefix) || u.Name[:len(prefix)] != prefix {
		return 0, false
	}
	n, err := strconvx.Atoi(u.Name[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Table is an ordered list of UARTs. Bring-up uses entry 0.
type Table []UART

// Board wiring for each instance.
var (
	UART1 = UART{Name: "uart1", Periph: gd32h7.USART0, IRQ: gd32h7.USART0_IRQn, TX: "PA9", RX: "PA10"}
	UART2 = UART{Name: "uart2", Periph: gd32h7.USART1, IRQ: gd32h7.USART1_IRQn, TX: "PA2", RX: "PA3"}
	UART3 = UART{Name: "uart3", Periph: gd32h7.USART2, IRQ: gd32h7.USART2_IRQn, TX: "PB10", RX: "PB11"}
	UART4 = UART{Name: "uart4", Periph: gd32h7.UART3, IRQ: gd32h7.UART3_IRQn, TX: "PC10", RX: "PC11"}
	UART5 = UART{Name: "uart5", Periph: gd32h7.UART4, IRQ: gd32h7.UART4_IRQn, TX: "PC12", RX: "PD2"}
)

// Known lists every instance this board can wire, in table order.
var Known = Table{UART1, UART2, UART3, UART4, UART5}

const numKnown = 5

// enabled is filled by the build-tagged select_*.go files.
var enabled [numKnown]bool

func enable(n int) { enabled[n-1] = true }

// Enabled returns the UARTs selected for this build, in Known order.
func Enabled() Table {
	var t Table
	for i, u := range Known {
		if enabled[i] {
			t = append(t, u)
		}
	}
	return t
}
