package tinyfmt

// Line editing control characters
const (
	charETX       = 0x03
	charEOT       = 0x04
	charBackspace = 0x08
	charDelete    = 0x7F
)

// ReadLine reads one line from r into buf, echoing accepted characters to
// echo when it is non-nil. Backspace and DEL erase the previous character.
// The line ends at CR or LF; other control characters except tab are ignored.
//
// Like Snprintf, at most len(buf)-1 bytes are stored, excess input is
// dropped and buf[n] is set to NUL. The boolean is false when the input
// ended (EOT or a NUL from the device) instead of a line terminator. ETX,
// the Ctrl-C a raw terminal delivers, also ends input and discards the
// partial line.
//
// len(buf) must be at least 1.
func ReadLine(r CharReader, echo CharWriter, buf []byte) (int, bool) {
	if len(buf) == 0 {
		panic("tinyfmt: ReadLine needs room for the terminator")
	}

	n := 0
	more := true
loop:
	for {
		c := r.ReadChar()
		switch {
		case c == 0 || c == charEOT:
			more = false
			break loop
		case c == charETX:
			n = 0
			more = false
			break loop
		case c == '\r' || c == '\n':
			if echo != nil {
				echo.WriteChar('\n')
			}
			break loop
		case c == charBackspace || c == charDelete:
			if n > 0 {
				n--
				if echo != nil {
					echo.WriteChar(charBackspace)
					echo.WriteChar(' ')
					echo.WriteChar(charBackspace)
				}
			}
		case c < ' ' && c != '\t':
		default:
			if n < len(buf)-1 {
				buf[n] = c
				n++
				if echo != nil {
					echo.WriteChar(c)
				}
			}
		}
	}

	buf[n] = 0
	return n, more
}
