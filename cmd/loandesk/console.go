package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/library/features/activeloans"
	"github.com/AntonStoeckl/library-lending-go/library/features/bookcatalog"
	"github.com/AntonStoeckl/library-lending-go/library/features/loanhistory"
	"github.com/AntonStoeckl/library-lending-go/library/features/renewloan"
	"github.com/AntonStoeckl/library-lending-go/library/session"
)

const (
	sectionRule  = "----------------------------------"
	notAvailable = "N/A"
)

var errInputClosed = errors.New("input closed")

type menuItem struct {
	label     string
	operation session.Operation
	action    func(ctx context.Context, s session.Session) error
}

// console drives one login session over line-based input and output.
type console struct {
	app app
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(a app, in io.Reader, out io.Writer) *console {
	return &console{
		app: a,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// run authenticates the user and serves the menu of their role until they exit or the input ends.
// Only infrastructure failures of the input are returned as errors.
func (c *console) run(ctx context.Context) error {
	rule := strings.Repeat("=", 60)
	c.printf("%s\n", rule)
	c.printf("Welcome to %s by %s\n", productName, companyName)
	c.printf("Enter your login and secret to access the system.\n")
	c.printf("%s\n", rule)

	login, err := c.prompt("Login: ")
	if err != nil {
		return c.exitOnClosedInput(err)
	}

	secret, err := c.prompt("Secret: ")
	if err != nil {
		return c.exitOnClosedInput(err)
	}

	s, ok := c.app.sessions.Authenticate(login, secret)
	if !ok {
		c.printf("\nAccess denied: invalid login or secret.\n")
		return nil
	}

	c.printf("\nAccess granted. Welcome, %s (%s).\n\n", s.User.Name, s.Role())
	c.printf("Developer information (About menu):\n")
	c.printf("Company: %s - Product: %s\n\n", companyName, productName)

	switch s.Role() {
	case core.RoleClient:
		return c.menuLoop(ctx, s, "Menu (Client)", []menuItem{
			{label: "View loans and fines", operation: session.ViewOwnLoans, action: c.showActiveLoans},
			{label: "Renew a loan", operation: session.RenewLoan, action: c.renewLoan},
			{label: "View books and status", operation: session.ViewBooks, action: c.showBooks},
			{label: "About " + companyName, operation: session.ViewAbout, action: c.showAbout},
		})

	case core.RoleLibrarian:
		return c.menuLoop(ctx, s, "Menu (Librarian)", []menuItem{
			{label: "List all loans (complete history)", operation: session.ViewLoanHistory, action: c.showLoanHistory},
			{label: "View books and status", operation: session.ViewBooks, action: c.showBooks},
			{label: "About " + companyName, operation: session.ViewAbout, action: c.showAbout},
		})

	default:
		c.printf("Unknown user role. Exiting...\n")
		return nil
	}
}

func (c *console) menuLoop(ctx context.Context, s session.Session, title string, items []menuItem) error {
	exitChoice := len(items) + 1

	for {
		c.printf("--- %s ---\n", title)
		for i, item := range items {
			c.printf("%d - %s\n", i+1, item.label)
		}
		c.printf("%d - Exit\n", exitChoice)

		choice, err := c.prompt("Choose an option: ")
		if err != nil {
			return c.exitOnClosedInput(err)
		}

		n, convErr := strconv.Atoi(choice)
		if convErr == nil && n == exitChoice {
			c.printf("Exiting... Thank you for using %s!\n", productName)
			return nil
		}

		if convErr != nil || n < 1 || n > len(items) || !s.Permits(items[n-1].operation) {
			c.printf("Invalid option. Try again.\n\n")
			continue
		}

		if actionErr := items[n-1].action(ctx, s); actionErr != nil {
			if errors.Is(actionErr, errInputClosed) || ctx.Err() != nil {
				return c.exitOnClosedInput(actionErr)
			}

			c.printf("Error: %v\n\n", actionErr)
		}
	}
}

func (c *console) showActiveLoans(ctx context.Context, s session.Session) error {
	c.printf("\n--- Active loans of %s ---\n", s.User.Name)

	result, err := c.app.activeLoans.Handle(ctx, activeloans.BuildQuery(s.User.ID, c.app.now()))
	if err != nil {
		return err
	}

	if result.Count == 0 {
		c.printf("No active loans at the moment.\n\n")
		return nil
	}

	for i, loan := range result.Loans {
		status := "ON TIME"
		if loan.Overdue {
			status = fmt.Sprintf("OVERDUE (fine: %s)", loan.CurrentFine)
		}

		c.printf("%d. [%s] %s\n", i+1, loan.BookID, loan.BookTitle)
		c.printf("   Lent on: %s\n", core.FormatDate(loan.LentOn))
		c.printf("   Due on: %s\n", core.FormatDate(loan.DueOn))
		c.printf("   Status: %s | Renewals: %d/%d\n", status, loan.RenewalsGranted, result.MaxRenewals)
	}

	c.printf("%s\n", sectionRule)
	c.printf("Total fines owed: %s\n", result.TotalFine)
	c.printf("%s\n\n", sectionRule)

	return nil
}

func (c *console) renewLoan(ctx context.Context, s session.Session) error {
	now := c.app.now()

	result, err := c.app.activeLoans.Handle(ctx, activeloans.BuildQuery(s.User.ID, now))
	if err != nil {
		return err
	}

	if result.Count == 0 {
		c.printf("No active loans to renew.\n\n")
		return nil
	}

	c.printf("\n--- Renew loan ---\n")
	for i, loan := range result.Loans {
		c.printf("%d. %s (due on: %s)\n", i+1, loan.BookTitle, core.FormatDate(loan.DueOn))
		c.printf("   Renewals: %d/%d\n", loan.RenewalsGranted, result.MaxRenewals)
	}

	choice, err := c.prompt("Enter the number of the loan to renew (0 to cancel): ")
	if err != nil {
		return err
	}

	index, ok := renewloan.SelectLoan(choice, result.Count)
	if !ok {
		c.printf("Operation cancelled or invalid.\n\n")
		return nil
	}

	selected := result.Loans[index]

	renewal, err := c.app.renewals.Handle(ctx, renewloan.BuildCommand(selected.LoanID, s.Role(), now))
	if err != nil {
		return err
	}

	switch renewal.Outcome {
	case core.RenewalGranted:
		c.printf("\nRenewal granted!\n")
		c.printf("   %s (new due date: %s)\n", selected.BookTitle, core.FormatDate(renewal.Loan.DueOn))
		c.printf("   Renewals: %d/%d\n\n", renewal.Loan.RenewalsGranted, c.app.policy.MaxRenewals)
	case core.RenewalDeniedOverdue:
		c.printf("\nRenewal denied: the loan is OVERDUE. Settle the fine first.\n\n")
	case core.RenewalLimitReached:
		c.printf("\nRenewal denied: the limit of %d renewals was reached.\n\n", c.app.policy.MaxRenewals)
	case core.RenewalNotAuthorized:
		c.printf("\nOnly clients may renew loans.\n\n")
	case core.RenewalLoanNotActive:
		c.printf("\nRenewal denied: the loan was already returned.\n\n")
	}

	return nil
}

func (c *console) showBooks(ctx context.Context, _ session.Session) error {
	c.printf("\n--- Books (availability and status) ---\n")

	result, err := c.app.bookCatalog.Handle(ctx, bookcatalog.BuildQuery())
	if err != nil {
		return err
	}

	if result.Count == 0 {
		c.printf("No books registered.\n\n")
		return nil
	}

	for _, book := range result.Books {
		availability := "Available"
		if book.OnLoan {
			availability = "On loan"
		}

		condition, shelf := notAvailable, notAvailable
		if book.HasStatus {
			condition, shelf = book.Condition, book.ShelfPosition
		}

		loanable := "No"
		if book.Loanable {
			loanable = "Yes"
		}

		c.printf("[%s] %s by %s (%s)\n", book.BookID, book.Title, book.Author, availability)
		c.printf("   > Condition: %s | Shelf: %s | Loanable: %s\n", condition, shelf, loanable)
	}

	c.printf("%s\n\n", sectionRule)

	return nil
}

func (c *console) showLoanHistory(ctx context.Context, _ session.Session) error {
	c.printf("\n--- All loans (complete history) ---\n")

	result, err := c.app.loanHistory.Handle(ctx, loanhistory.BuildQuery())
	if err != nil {
		return err
	}

	if result.Count == 0 {
		c.printf("No loans registered.\n\n")
		return nil
	}

	for _, loan := range result.Loans {
		returnedOn := string(loanhistory.StatusActive)
		if loan.ReturnedOn != nil {
			returnedOn = core.FormatDate(*loan.ReturnedOn)
		}

		c.printf("[%s] %s | Borrower: %s\n", loan.LoanID, loan.Status, loan.BorrowerName)
		c.printf("  > Book: %s | Lent on: %s | Due on: %s\n",
			loan.BookTitle, core.FormatDate(loan.LentOn), core.FormatDate(loan.DueOn))
		c.printf("  > Returned on: %s | Fine charged: %s | Renewals: %d\n",
			returnedOn, loan.FineCharged, loan.RenewalsGranted)
	}

	c.printf("%s\n\n", sectionRule)

	return nil
}

func (c *console) showAbout(_ context.Context, _ session.Session) error {
	printAbout(c.out)
	return nil
}

// prompt prints the label and reads one trimmed line.
// End of input is reported as errInputClosed.
func (c *console) prompt(label string) (string, error) {
	c.printf("%s", label)

	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}

		return "", errInputClosed
	}

	return strings.TrimSpace(c.in.Text()), nil
}

func (c *console) exitOnClosedInput(err error) error {
	if errors.Is(err, errInputClosed) || errors.Is(err, context.Canceled) {
		c.printf("\nInput closed. Exiting...\n")
		return nil
	}

	return err
}

func (c *console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

