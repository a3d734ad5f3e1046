//go:build gd32h7

package strconvx

// Integer-only helpers with strconv signatures. strconv drags in float
// formatting tables that the console image has no use for.

type numError struct{ msg string }

func (e *numError) Error() string { return "strconvx: " + e.msg }

var (
	errSyntax = &numError{"invalid syntax"}
	errRange  = &numError{"value out of range"}
)

func Itoa(i int) string { return FormatInt(int64(i), 10) }

// Atoi parses a base-10 int. Unlike C atoi it rejects trailing garbage.
func Atoi(s string) (int, error) {
	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	u, err := ParseUint(s, 10, 63)
	if err != nil {
		return 0, err
	}
	if neg {
		return -int(u), nil
	}
	return int(u), nil
}

func FormatInt(i int64, base int) string {
	if i < 0 {
		return "-" + FormatUint(uint64(-i), base)
	}
	return FormatUint(uint64(i), base)
}

func FormatUint(u uint64, base int) string {
	if base < 2 || base > 36 {
		base = 10
	}
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	var buf [64]byte
	i := len(buf)
	for {
		i--
		buf[i] = digits[u%uint64(base)]
		u /= uint64(base)
		if u == 0 {
			break
		}
	}
	return string(buf[i:])
}

// ParseUint accepts base 0 (0x, 0o, 0b prefixes, leading 0 for octal) or 2..36.
func ParseUint(s string, base, bitSize int) (uint64, error) {
	if base == 0 {
		base = 10
		switch {
		case len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X'):
			base, s = 16, s[2:]
		case len(s) > 2 && s[0] == '0' && (s[1] == 'o' || s[1] == 'O'):
			base, s = 8, s[2:]
		case len(s) > 2 && s[0] == '0' && (s[1] == 'b' || s[1] == 'B'):
			base, s = 2, s[2:]
		case len(s) > 1 && s[0] == '0':
			base, s = 8, s[1:]
		}
	}
	if base < 2 || base > 36 || s == "" {
		return 0, errSyntax
	}
	if bitSize <= 0 || bitSize > 64 {
		bitSize = 64
	}
	max := uint64(1)<<uint(bitSize) - 1
	if bitSize == 64 {
		max = ^uint64(0)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		var d uint64
		switch c := s[i]; {
		case '0' <= c && c <= '9':
			d = uint64(c - '0')
		case 'a' <= c && c <= 'z':
			d = uint64(c-'a') + 10
		case 'A' <= c && c <= 'Z':
			d = uint64(c-'A') + 10
		default:
			return 0, errSyntax
		}
		if d >= uint64(base) {
			return 0, errSyntax
		}
		if v > (max-d)/uint64(base) {
			return max, errRange
		}
		v = v*uint64(base) + d
	}
	return v, nil
}
