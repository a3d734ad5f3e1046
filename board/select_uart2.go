//go:build bsp_using_uart2

package board

func init() { enable(2) }
