package renewloan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/library/features/renewloan"
)

func Test_SelectLoan(t *testing.T) {
	testCases := []struct {
		choice        string
		count         int
		expectedIndex int
		expectedOK    bool
	}{
		{choice: "1", count: 3, expectedIndex: 0, expectedOK: true},
		{choice: " 3 ", count: 3, expectedIndex: 2, expectedOK: true},
		{choice: "0", count: 3, expectedOK: false},
		{choice: "4", count: 3, expectedOK: false},
		{choice: "-1", count: 3, expectedOK: false},
		{choice: "abc", count: 3, expectedOK: false},
		{choice: "", count: 3, expectedOK: false},
		{choice: "1", count: 0, expectedOK: false},
	}

	for _, tc := range testCases {
		t.Run("choice "+tc.choice, func(t *testing.T) {
			index, ok := renewloan.SelectLoan(tc.choice, tc.count)

			assert.Equal(t, tc.expectedOK, ok)
			assert.Equal(t, tc.expectedIndex, index)
		})
	}
}
