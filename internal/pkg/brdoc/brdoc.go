// Package brdoc validates Brazilian national registration numbers:
// CPF for individuals (11 digits) and CNPJ for companies (14 digits).
package brdoc

import "strings"

const (
	CPFLength  = 11
	CNPJLength = 14
)

// OnlyDigits drops every rune that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether s holds a CPF with both check digits correct.
// Formatting characters are ignored.
func ValidCPF(s string) bool {
	d, ok := parse(s, CPFLength)
	if !ok {
		return false
	}
	return cpfDigit(d[:9]) == d[9] && cpfDigit(d[:10]) == d[10]
}

// ValidCNPJ reports whether s holds a CNPJ with both check digits correct.
// Formatting characters are ignored.
func ValidCNPJ(s string) bool {
	d, ok := parse(s, CNPJLength)
	if !ok {
		return false
	}
	return cnpjDigit(d[:12]) == d[12] && cnpjDigit(d[:13]) == d[13]
}

// CPFCheckDigits returns the two check digits for a 9-digit CPF base.
func CPFCheckDigits(base string) (string, bool) {
	d, ok := digits(base, 9)
	if !ok {
		return "", false
	}
	first := cpfDigit(d)
	second := cpfDigit(append(d, first))
	return string([]byte{'0' + first, '0' + second}), true
}

// CNPJCheckDigits returns the two check digits for a 12-digit CNPJ base.
func CNPJCheckDigits(base string) (string, bool) {
	d, ok := digits(base, 12)
	if !ok {
		return "", false
	}
	first := cnpjDigit(d)
	second := cnpjDigit(append(d, first))
	return string([]byte{'0' + first, '0' + second}), true
}

// FormatCPF renders 000.000.000-00. Input that is not 11 digits is returned as is.
func FormatCPF(s string) string {
	d := OnlyDigits(s)
	if len(d) != CPFLength {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ renders 00.000.000/0000-00. Input that is not 14 digits is returned as is.
func FormatCNPJ(s string) string {
	d := OnlyDigits(s)
	if len(d) != CNPJLength {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// parse strips formatting and rejects wrong lengths and repeated-digit numbers
// such as 000.000.000-00, which satisfy the checksum but are never issued.
func parse(s string, length int) ([]byte, bool) {
	d, ok := digits(OnlyDigits(s), length)
	if !ok {
		return nil, false
	}
	for _, v := range d[1:] {
		if v != d[0] {
			return d, true
		}
	}
	return nil, false
}

func digits(s string, length int) ([]byte, bool) {
	if len(s) != length {
		return nil, false
	}
	out := make([]byte, length, length+1)
	for i := 0; i < length; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, false
		}
		out[i] = c - '0'
	}
	return out, true
}

// cpfDigit weighs digits from len+1 down to 2 and reduces (sum*10) mod 11.
func cpfDigit(d []byte) byte {
	sum := 0
	w := len(d) + 1
	for i, v := range d {
		sum += int(v) * (w - i)
	}
	r := (sum * 10) % 11
	if r >= 10 {
		return 0
	}
	return byte(r)
}

// cnpjDigit weighs digits right to left with the cycle 2..9.
func cnpjDigit(d []byte) byte {
	sum := 0
	for k := 0; k < len(d); k++ {
		sum += int(d[len(d)-1-k]) * (2 + k%8)
	}
	r := sum % 11
	if r < 2 {
		return 0
	}
	return byte(11 - r)
}
