package conv

// Itoa writes base-10 representation of n into buf and returns the used slice.
// buf should be length >= 20 for int64.
func Itoa(buf []byte, n int64) []byte {
	if len(buf) == 0 {
		return buf[:0]
	}
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	out := Utoa(buf[1:], uint64(-n))
	i := len(buf) - len(out) - 1
	buf[i] = '-'
	return buf[i:]
}
