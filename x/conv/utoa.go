package conv

// Utoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for uint64.
func Utoa(buf []byte, n uint64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
		return buf[i:]
	}
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return buf[i:]
}

// U8 formats a byte-sized value such as a matrix coordinate.
func U8(n uint8) string {
	var buf [3]byte
	return string(Utoa(buf[:], uint64(n)))
}

// U32 formats a counter.
func U32(n uint32) string {
	var buf [10]byte
	return string(Utoa(buf[:], uint64(n)))
}
