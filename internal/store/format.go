package store

import "strings"

// チェックアウト入力の整形。見た目を揃えるだけで正しさの検証はしない。

// FormatCardNumber は数字だけ拾って4桁ごとに空白を入れる（最大16桁）。
func FormatCardNumber(s string) string {
	digits := onlyDigits(s, 16)

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatCardExpiry はMM/YY形式に整形する。
func FormatCardExpiry(s string) string {
	digits := onlyDigits(s, 4)
	if len(digits) <= 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:]
}

// FormatCardCVC は数字のみ、最大4桁。
func FormatCardCVC(s string) string {
	return onlyDigits(s, 4)
}

func onlyDigits(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if b.Len() >= max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}
