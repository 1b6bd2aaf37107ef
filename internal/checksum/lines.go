package checksum

// MaxLineBytes bounds the length of a single source line. The scanner buffer
// grows on demand up to this size; longer lines fail with bufio.ErrTooLong.
const MaxLineBytes = 256 << 20

const initialBufferSize = 64 << 10

// ScanLines is a bufio.SplitFunc that yields lines terminated by "\n", "\r\n"
// or a lone "\r". The terminator is not part of the token. A final line
// without terminator is returned as-is; empty input yields no lines.
//
// A '\r' at the end of the buffered window is held back until the next byte
// is known, so a "\r\n" pair split across two reads is still one terminator.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			return 0, nil, nil
		}
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
