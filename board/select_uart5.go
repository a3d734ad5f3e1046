//go:build bsp_using_uart5

package board

func init() { enable(5) }
