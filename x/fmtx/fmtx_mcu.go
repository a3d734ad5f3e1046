//go:build gd32h7

package fmtx

import (
	"io"

	"gd32h7-usart/x/strconvx"
)

// DefaultOutput receives Print/Printf. Until the console USART is up, output
// is discarded; firmware sets this to the bring-up Port.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func Sprintf(format string, a ...any) string {
	var b buf
	b.format(format, a)
	return string(b)
}

func Printf(format string, a ...any) (int, error) { return Fprintf(DefaultOutput, format, a...) }

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	var b buf
	b.format(format, a)
	return w.Write(b)
}

func Errorf(format string, a ...any) error { return stringError(Sprintf(format, a...)) }

func Sprint(a ...any) string {
	var b buf
	for i, v := range a {
		if i > 0 {
			b = append(b, ' ')
		}
		b.value(v, 'v')
	}
	return string(b)
}

func Fprint(w io.Writer, a ...any) (int, error) { return io.WriteString(w, Sprint(a...)) }

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

type stringError string

func (e stringError) Error() string { return string(e) }

// buf implements the subset the console needs: %s %q %d %x %X %c %t %v %%,
// a width, the '0' pad flag (register dumps use %08x) and '-' to pad on the
// right.
type buf []byte

func (b *buf) format(format string, args []any) {
	ai := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			*b = append(*b, c)
			continue
		}
		i++
		if i >= len(format) {
			*b = append(*b, '%')
			return
		}
		if format[i] == '%' {
			*b = append(*b, '%')
			continue
		}
		pad, left := byte(' '), false
		for i < len(format) && (format[i] == '0' || format[i] == '-') {
			if format[i] == '-' {
				left = true
			} else {
				pad = '0'
			}
			i++
		}
		if left {
			pad = ' '
		}
		width := 0
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) {
			return
		}
		verb := format[i]
		if ai >= len(args) {
			*b = append(*b, "%!"...)
			*b = append(*b, verb)
			*b = append(*b, "(MISSING)"...)
			continue
		}
		var item buf
		item.value(args[ai], verb)
		ai++
		if left {
			*b = append(*b, item...)
		}
		for n := width - len(item); n > 0; n-- {
			*b = append(*b, pad)
		}
		if !left {
			*b = append(*b, item...)
		}
	}
}

func (b *buf) value(v any, verb byte) {
	switch verb {
	case 'x', 'X':
		s := strconvx.FormatUint(toU64(v), 16)
		if verb == 'X' {
			s = upper(s)
		}
		*b = append(*b, s...)
		return
	case 'c':
		*b = append(*b, byte(toU64(v)))
		return
	case 'q':
		if s, ok := v.(string); ok {
			b.quote(s)
			return
		}
	}
	switch x := v.(type) {
	case string:
		*b = append(*b, x...)
	case []byte:
		*b = append(*b, x...)
	case bool:
		if x {
			*b = append(*b, "true"...)
		} else {
			*b = append(*b, "false"...)
		}
	case error:
		*b = append(*b, x.Error()...)
	case interface{ String() string }:
		*b = append(*b, x.String()...)
	case int, int8, int16, int32, int64:
		*b = append(*b, strconvx.FormatInt(toI64(x), 10)...)
	case uint, uint8, uint16, uint32, uint64, uintptr:
		*b = append(*b, strconvx.FormatUint(toU64(x), 10)...)
	default:
		*b = append(*b, "<?>"...)
	}
}

func (b *buf) quote(s string) {
	*b = append(*b, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '"':
			*b = append(*b, '\\', c)
		case '\n':
			*b = append(*b, '\\', 'n')
		case '\r':
			*b = append(*b, '\\', 'r')
		default:
			*b = append(*b, c)
		}
	}
	*b = append(*b, '"')
}

func upper(s string) string {
	p := []byte(s)
	for i, c := range p {
		if 'a' <= c && c <= 'f' {
			p[i] = c - ('a' - 'A')
		}
	}
	return string(p)
}

func toI64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	}
	return int64(toU64(v))
}

func toU64(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	case uintptr:
		return uint64(t)
	case int:
		return uint64(t)
	case int8:
		return uint64(t)
	case int16:
		return uint64(t)
	case int32:
		return uint64(t)
	case int64:
		return uint64(t)
	}
	return 0
}
