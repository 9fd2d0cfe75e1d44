package renewloan

import (
	"strconv"
	"strings"
)

// SelectLoan maps a 1-based menu choice to an index into a list of count loans.
// Zero, non-numeric and out-of-range input all mean the selection was cancelled.
func SelectLoan(choice string, count int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > count {
		return 0, false
	}

	return n - 1, true
}
