package win32

import "unicode/utf16"

// UTF16ToString decodes a NUL-terminated UTF-16 buffer.
func UTF16ToString(buf []uint16) string {
	for i, v := range buf {
		if v == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// CopyUTF16 encodes s into dst, truncating so a terminating NUL always fits.
// It returns the number of UTF-16 units written, excluding the terminator.
func CopyUTF16(dst []uint16, s string) int {
	if len(dst) == 0 {
		return 0
	}
	n := 0
	for _, r := range s {
		var units [2]uint16
		w := 1
		if r1, r2 := utf16.EncodeRune(r); r1 != '\uFFFD' {
			units[0], units[1] = uint16(r1), uint16(r2)
			w = 2
		} else {
			units[0] = uint16(r)
		}
		if n+w > len(dst)-1 {
			break
		}
		copy(dst[n:], units[:w])
		n += w
	}
	dst[n] = 0
	return n
}
