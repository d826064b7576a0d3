package utils

import (
	"fmt"
)

// FormatRupees memformat jumlah rupee dengan pemisah ribuan gaya India:
// 2123 -> "Rs. 2,123", 125000 -> "Rs. 1,25,000".
func FormatRupees(amount int) string {
	neg := false
	if amount < 0 {
		neg = true
		amount = -amount
	}

	s := fmt.Sprintf("%d", amount)
	if len(s) > 3 {
		// Kelompok terakhir tiga digit, sisanya per dua digit
		head := s[:len(s)-3]
		tail := s[len(s)-3:]
		grouped := ""
		for len(head) > 2 {
			grouped = "," + head[len(head)-2:] + grouped
			head = head[:len(head)-2]
		}
		s = head + grouped + "," + tail
	}

	if neg {
		return "Rs. -" + s
	}
	return "Rs. " + s
}
