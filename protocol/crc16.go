package protocol

// crcInit is the CRC16-CCITT (MCRF4XX) preset
const crcInit = 0xFFFF

// CRC16 computes the checksum carried in the frame trailer
func CRC16(data []byte) uint16 {
	crc := uint16(crcInit)
	for _, b := range data {
		crc = crc16Update(crc, b)
	}
	return crc
}

// crc16Update folds one byte into crc, bit-reflected, polynomial 0x1021
func crc16Update(crc uint16, b byte) uint16 {
	x := b ^ byte(crc)
	x ^= x << 4
	w := uint16(x)
	return (crc >> 8) ^ (w << 8) ^ (w << 3) ^ (w >> 4)
}
