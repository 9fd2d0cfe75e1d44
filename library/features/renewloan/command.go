package renewloan

import (
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

const (
	commandType = "RenewLoan"
)

// Command represents the intent to renew a loan.
type Command struct {
	LoanID     core.LoanIDString
	CallerRole core.Role
	AsOf       time.Time
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID core.LoanIDString, callerRole core.Role, asOf time.Time) Command {
	return Command{
		LoanID:     loanID,
		CallerRole: callerRole,
		AsOf:       asOf,
	}
}

// CommandType returns the command type.
func (c Command) CommandType() string {
	return commandType
}
