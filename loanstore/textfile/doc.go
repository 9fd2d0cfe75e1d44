// Package textfile loads the library's record files.
//
// All files are UTF-8 text with one record per line and ';' separated fields:
//
//	usuarios.txt        id;name;role;login;secret
//	livros.txt          id;title;author
//	status_livros.txt   bookID;position;condition;true|false
//	emprestimos.txt     loanID;borrowerID;bookID;lentOn;dueOn;returnedOn|None;fine;renewals
//
// Fields are trimmed and blank lines are ignored. Extra trailing fields are ignored.
// Records with too few fields or unparsable values are skipped, they never abort loading.
// The users and books files are required; the status and loan files are optional.
package textfile
