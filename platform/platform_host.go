//go:build !gd32h7

// Package platform hands out the register bus for the build: real MMIO on
// the chip, a simulated GD32H7 everywhere else.
package platform

import (
	"os"
	"sync"

	"gd32h7-usart/drivers/gd32h7/gd32sim"
	"gd32h7-usart/drivers/mmio"
)

var (
	once sync.Once
	chip *gd32sim.Chip
)

// Chip is the shared simulator. Its transmitters print to stdout.
func Chip() *gd32sim.Chip {
	once.Do(func() { chip = gd32sim.New(os.Stdout) })
	return chip
}

func Bus() mmio.Bus { return Chip() }
