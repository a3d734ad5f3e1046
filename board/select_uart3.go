//go:build bsp_using_uart3

package board

func init() { enable(3) }
