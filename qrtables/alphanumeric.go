package qrtables

// AlphanumericChars is the 45-character QR alphanumeric set, index 0..44,
// in the fixed order the standard assigns them.
const AlphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// AlphanumericIndex reports the 0..44 index of a character in the
// alphanumeric set, or false if it is not a member.
func AlphanumericIndex(c byte) (int, bool) {
	i := indexOfAlphanumeric(c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

func indexOfAlphanumeric(c byte) int {
	for i := 0; i < len(AlphanumericChars); i++ {
		if AlphanumericChars[i] == c {
			return i
		}
	}
	return -1
}
