//go:build bsp_using_uart4

package board

func init() { enable(4) }
