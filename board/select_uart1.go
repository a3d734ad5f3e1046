//go:build bsp_using_uart1

package board

func init() { enable(1) }
