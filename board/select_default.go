//go:build !(bsp_using_uart1 || bsp_using_uart2 || bsp_using_uart3 || bsp_using_uart4 || bsp_using_uart5)

package board

// No UART chosen explicitly: the console defaults to uart1 on PA9/PA10.
func init() { enable(1) }
