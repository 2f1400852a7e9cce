package core

// appendUint appends the decimal form of n to buf without using strconv
// or fmt, which are too large for the AVR flash
func appendUint(buf []byte, n uint64) []byte {
	if n == 0 {
		return append(buf, '0')
	}

	// Count digits
	digits := 0
	for temp := n; temp > 0; temp /= 10 {
		digits++
	}

	// Build the number right to left in place
	start := len(buf)
	for i := 0; i < digits; i++ {
		buf = append(buf, 0)
	}
	for pos := start + digits - 1; n > 0; pos-- {
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return buf
}
