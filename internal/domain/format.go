package domain

import (
	"fmt"
	"strconv"
)

func formatTempC(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64) + "°C"
}

func formatPercent(p int) string {
	return strconv.Itoa(p) + "%"
}

func formatWindKMH(w float64) string {
	return fmt.Sprintf("%.1f km/h", w)
}
