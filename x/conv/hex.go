package conv

const hexd = "0123456789abcdef"

// AppendHex8 appends b as two lowercase hex digits.
func AppendHex8(dst []byte, b uint8) []byte {
	return append(dst, hexd[b>>4], hexd[b&0x0f])
}

// AppendHexBytes appends p as space-separated hex pairs, "00 1f 02".
func AppendHexBytes(dst []byte, p []byte) []byte {
	for i, b := range p {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = AppendHex8(dst, b)
	}
	return dst
}
