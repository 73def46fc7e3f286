package stakkerlog

const hexUpper = "0123456789ABCDEF"

// lineReserved marks the bytes that may not appear bare in single-line
// output: everything at or below space, plus the syntax characters.
var lineReserved = func() [256]bool {
	var table [256]bool
	for i := 0; i <= 0x20; i++ {
		table[i] = true
	}
	table['"'] = true
	table['='] = true
	table['\\'] = true
	table['['] = true
	table[']'] = true
	table['{'] = true
	table['}'] = true
	return table
}()

// lineQuotedEscape marks the bytes that still need \XX escaping once a value
// has been quoted: control characters, the quote and the backslash. Space
// and the bracket characters pass through verbatim inside quotes.
var lineQuotedEscape = func() [256]bool {
	var table [256]bool
	for i := 0; i < 0x20; i++ {
		table[i] = true
	}
	table['"'] = true
	table['\\'] = true
	return table
}()

// jsonNeedsEscape marks the bytes that RFC 8259 requires escaping inside a
// JSON string: control characters, the quote and the backslash.
var jsonNeedsEscape = func() [256]bool {
	var table [256]bool
	for i := 0; i < 0x20; i++ {
		table[i] = true
	}
	table['"'] = true
	table['\\'] = true
	return table
}()

// Multi-byte UTF-8 sequences only use bytes >= 0x80, so the byte-wise scans
// below never split a rune: every byte needing treatment is ASCII.

func stringHasLineReserved(s string) bool {
	for i := 0; i < len(s); i++ {
		if lineReserved[s[i]] {
			return true
		}
	}
	return false
}

func appendLineHexEscape(dst []byte, c byte) []byte {
	return append(dst, '\\', hexUpper[c>>4], hexUpper[c&0x0f])
}

// appendLineKey escapes every reserved byte of key individually; keys are
// never quoted. An empty key becomes the visible \20 placeholder.
func appendLineKey(dst []byte, key string) []byte {
	if key == "" {
		return append(dst, '\\', '2', '0')
	}
	start := 0
	for i := 0; i < len(key); i++ {
		if !lineReserved[key[i]] {
			continue
		}
		if start < i {
			dst = append(dst, key[start:i]...)
		}
		dst = appendLineHexEscape(dst, key[i])
		start = i + 1
	}
	if start < len(key) {
		dst = append(dst, key[start:]...)
	}
	return dst
}

// appendLineValue writes a string scalar: verbatim when it contains no
// reserved byte, otherwise quoted with \XX escapes for control characters,
// the quote and the backslash.
func appendLineValue(dst []byte, val string) []byte {
	if !stringHasLineReserved(val) {
		return append(dst, val...)
	}
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(val); i++ {
		if !lineQuotedEscape[val[i]] {
			continue
		}
		if start < i {
			dst = append(dst, val[start:i]...)
		}
		dst = appendLineHexEscape(dst, val[i])
		start = i + 1
	}
	if start < len(val) {
		dst = append(dst, val[start:]...)
	}
	return append(dst, '"')
}

// appendJSONString writes a double-quoted JSON string. Control characters
// become \u00XX with uppercase hex digits; quote and backslash get a leading
// backslash; everything else, including non-ASCII, passes through.
func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !jsonNeedsEscape[c] {
			continue
		}
		if start < i {
			dst = append(dst, s[start:i]...)
		}
		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexUpper[c>>4], hexUpper[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		dst = append(dst, s[start:]...)
	}
	return append(dst, '"')
}
