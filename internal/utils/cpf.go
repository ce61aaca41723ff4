package utils

import "strings"

// NormalizeCPF strips formatting characters from a CPF, keeping digits only.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF validates a Brazilian CPF using its two check digits. Accepts
// formatted ("123.456.789-09") or bare input. Numbers made of a single
// repeated digit pass the checksum but are not valid CPFs.
func ValidCPF(cpf string) bool {
	digits := NormalizeCPF(cpf)
	if len(digits) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < 11; i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return int(digits[9]-'0') == cpfCheckDigit(digits, 9) &&
		int(digits[10]-'0') == cpfCheckDigit(digits, 10)
}

// cpfCheckDigit computes the verifier digit over the first n digits, with
// weights n+1 down to 2.
func cpfCheckDigit(digits string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}
