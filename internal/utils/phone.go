package utils

import "strings"

// NormalizePhone убирает все нецифровые символы из номера телефона.
// "(11) 91234-5678" превращается в "11912345678".
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone проверяет нормализованный номер: допустимы 10 или 11 цифр.
func ValidPhone(normalized string) bool {
	if len(normalized) != 10 && len(normalized) != 11 {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
