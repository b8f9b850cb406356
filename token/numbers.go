package token

// Number scans the JSON number at the start of d, which may carry a
// leading '-'. A number may also start at its '.', as in ".5". It returns
// the number of bytes scanned and whether the number has a fraction or an
// exponent.
func Number(d []byte) (int, bool, error) {
	if len(d) > 0 && d[0] == '-' {
		n, isFloat, err := number(d[1:])
		return n + 1, isFloat, err
	}
	return number(d)
}

func number(d []byte) (int, bool, error) {
	if len(d) > 0 && d[0] == '.' {
		f := fract(d)
		if f == 0 {
			return 0, false, ErrNumber
		}
		return f + exp(d[f:]), true, nil
	}
	digits := asciiDigits(d)
	if digits == 0 {
		return 0, false, ErrNumber
	}
	if digits > 1 && d[0] == '0' {
		return digits, false, ErrNumberLeadingZero
	}
	f := fract(d[digits:])
	e := exp(d[digits+f:])
	if f+e == 0 {
		return digits, false, nil
	}
	return f + e + digits, true, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	default:
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return n + i
}

func fract(d []byte) int {
	if len(d) == 0 {
		return 0
	}
	if d[0] != '.' {
		return 0
	}
	for i := 1; i < len(d); i++ {
		if !asciiDigit(d[i]) {
			if i == 1 {
				// . must be followed by 1 or more digits rfc 7159
				return 0
			}
			return i
		}
	}
	if len(d) == 1 {
		return 0
	}
	return len(d)
}
