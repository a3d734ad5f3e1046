// Package gd32h7 holds the GD32H7xx memory map: peripheral base addresses and
// interrupt numbers for the blocks the console bring-up touches.
package gd32h7

const (
	APB1Base uint32 = 0x40000000
	APB2Base uint32 = 0x40010000
	AHB4Base uint32 = 0x58020000
)

// USART/UART register blocks.
const (
	USART0 = APB2Base + 0x1000
	USART1 = APB1Base + 0x4400
	USART2 = APB1Base + 0x4800
	UART3  = APB1Base + 0x4C00
	UART4  = APB1Base + 0x5000
)

// GPIO ports sit at a uniform stride from GPIOA.
const (
	GPIOStride uint32 = 0x400

	GPIOA = AHB4Base + 0*GPIOStride
	GPIOB = AHB4Base + 1*GPIOStride
	GPIOC = AHB4Base + 2*GPIOStride
	GPIOD = AHB4Base + 3*GPIOStride
	GPIOE = AHB4Base + 4*GPIOStride
	GPIOF = AHB4Base + 5*GPIOStride
	GPIOG = AHB4Base + 6*GPIOStride
	GPIOH = AHB4Base + 7*GPIOStride
)

// RCU is the reset and clock unit.
const RCU = AHB4Base + 0x4400

// IRQn is an NVIC interrupt number.
type IRQn int16

const (
	USART0_IRQn IRQn = 37
	USART1_IRQn IRQn = 38
	USART2_IRQn IRQn = 39
	UART3_IRQn  IRQn = 52
	UART4_IRQn  IRQn = 53
)

// Instance names a serial block for configuration tools.
type Instance struct {
	Name string
	Base uint32
	IRQ  IRQn
}

// Instances lists the serial blocks in instance order.
var Instances = [...]Instance{
	{"USART0", USART0, USART0_IRQn},
	{"USART1", USART1, USART1_IRQn},
	{"USART2", USART2, USART2_IRQn},
	{"UART3", UART3, UART3_IRQn},
	{"UART4", UART4, UART4_IRQn},
}

// LookupInstance finds an instance by name (exact match).
func LookupInstance(name string) (Instance, bool) {
	for _, in := range Instances {
		if in.Name == name {
			return in, true
		}
	}
	return Instance{}, false
}

// InstanceAt finds an instance by base address.
func InstanceAt(base uint32) (Instance, bool) {
	for _, in := range Instances {
		if in.Base == base {
			return in, true
		}
	}
	return Instance{}, false
}
