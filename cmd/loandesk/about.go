package main

import (
	"fmt"
	"io"
	"strings"
)

const (
	companyName = "SoftLib Solutions"
	productName = "LoanDesk"
	companyLogo = `
     ,_,
    [0,0]
    |)--)- SoftLib Solutions
    -"-"-
`
	companyHistory = "Founded in 2025 by library enthusiasts and developers, SoftLib Solutions builds simple " +
		"and scalable tools for managing collections and loans. Our mission is to bring readers and " +
		"knowledge closer with accessible technology that gives end users full autonomy."
)

var staff = []struct {
	name string
	role string
}{
	{name: "Mateus de Mattos", role: "Lead Developer"},
	{name: "Kauã Neves", role: "Systems Analyst"},
	{name: "Arthur Santanna", role: "QA Tester"},
}

func printAbout(w io.Writer) {
	rule := strings.Repeat("=", 50)

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprint(w, companyLogo)
	_, _ = fmt.Fprintf(w, "Company: %s\n", companyName)
	_, _ = fmt.Fprintf(w, "Product: %s\n\n", productName)
	_, _ = fmt.Fprintln(w, "History:")
	_, _ = fmt.Fprintf(w, "%s\n\n", companyHistory)
	_, _ = fmt.Fprintln(w, "Staff:")

	for _, member := range staff {
		_, _ = fmt.Fprintf(w, " - %s: %s\n", member.name, member.role)
	}

	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintln(w)
}
