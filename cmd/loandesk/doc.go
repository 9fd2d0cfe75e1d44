// Command loandesk is the interactive console of the library loan tracker.
//
// Users log in with login and secret. Clients list their open loans with live fines and renew them;
// librarians review the complete loan history; everybody may list the books and read the about screen.
//
// Usage:
//
//	loandesk [-config loandesk.yaml]
//
// Loans are kept in memory, seeded from the text records in data.dir, unless database.url is configured.
// Structured logs are written to stderr.
package main
