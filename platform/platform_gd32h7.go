//go:build gd32h7

// Package platform hands out the register bus for the build: real MMIO on
// the chip, a simulated GD32H7 everywhere else.
package platform

import "gd32h7-usart/drivers/mmio"

func Bus() mmio.Bus { return mmio.Volatile{} }
