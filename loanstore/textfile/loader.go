package textfile

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/core"
	"github.com/AntonStoeckl/library-lending-go/loanstore"
)

const (
	// UsersFileName holds id;name;role;login;secret records. Required.
	UsersFileName = "usuarios.txt"

	// BooksFileName holds id;title;author records. Required.
	BooksFileName = "livros.txt"

	// StatusesFileName holds bookID;position;condition;loanable records. Optional.
	StatusesFileName = "status_livros.txt"

	// LoansFileName holds loanID;borrowerID;bookID;lentOn;dueOn;returnedOn;fine;renewals records. Optional.
	LoansFileName = "emprestimos.txt"
)

const (
	fieldSeparator     = ";"
	noReturnDate       = "none"
	loanableTrue       = "true"
	userFieldCount     = 5
	bookFieldCount     = 3
	statusFieldCount   = 4
	loanFieldCount     = 8
	logMsgFileLoaded   = "record file loaded"
	logMsgFileMissing  = "optional record file not found"
	logMsgSkippedLine  = "skipping malformed record"
	logAttrFile        = "file"
	logAttrLine        = "line"
	logAttrRecordCount = "record_count"
	logAttrSkipped     = "skipped_count"
	logAttrError       = "error"
)

var (
	// ErrFileNotFound is returned when the users or books file does not exist.
	ErrFileNotFound = errors.New("required record file not found")

	// ErrReadingFileFailed is returned when a record file exists but cannot be opened or read.
	ErrReadingFileFailed = errors.New("reading the record file failed")

	errTooFewFields = errors.New("too few fields")
)

// Records is everything loaded from the record files, in file order.
type Records struct {
	Users    []core.User
	Books    []core.Book
	Statuses []core.BookStatus
	Loans    loanstore.StorableLoans
}

// Loader reads the record files from one directory.
type Loader struct {
	dir    string
	logger loanstore.Logger
}

// Option defines a functional option for configuring Loader.
type Option func(*Loader)

// WithLogger sets the logger. Loaded files are logged at info level, skipped records at debug level.
func WithLogger(logger loanstore.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader for the given directory.
func NewLoader(dir string, options ...Option) Loader {
	l := Loader{dir: dir}

	for _, option := range options {
		option(&l)
	}

	return l
}

// Load reads all four record files.
// A missing users or books file is reported as ErrFileNotFound; a missing status or loan file yields an empty set.
func (l Loader) Load() (Records, error) {
	var records Records
	var err error

	if records.Users, err = readRequired(l, UsersFileName, parseUser); err != nil {
		return Records{}, err
	}

	if records.Books, err = readRequired(l, BooksFileName, parseBook); err != nil {
		return Records{}, err
	}

	if records.Statuses, err = readOptional(l, StatusesFileName, parseStatus); err != nil {
		return Records{}, err
	}

	if records.Loans, err = readOptional(l, LoansFileName, parseLoan); err != nil {
		return Records{}, err
	}

	return records, nil
}

func readRequired[T any](l Loader, fileName string, parse func([]string) (T, error)) ([]T, error) {
	file, openErr := os.Open(filepath.Join(l.dir, fileName))
	if errors.Is(openErr, fs.ErrNotExist) {
		return nil, errors.Join(ErrFileNotFound, openErr)
	}

	if openErr != nil {
		return nil, errors.Join(ErrReadingFileFailed, openErr)
	}
	defer func() { _ = file.Close() }()

	return readRecords(l, fileName, file, parse)
}

func readOptional[T any](l Loader, fileName string, parse func([]string) (T, error)) ([]T, error) {
	records, err := readRequired(l, fileName, parse)
	if errors.Is(err, ErrFileNotFound) {
		l.logInfo(logMsgFileMissing, logAttrFile, fileName)

		return []T{}, nil
	}

	return records, err
}

// readRecords parses one record per non-blank line, skipping records that cannot be parsed.
func readRecords[T any](l Loader, fileName string, r io.Reader, parse func([]string) (T, error)) ([]T, error) {
	records := make([]T, 0)
	skipped := 0
	lineNumber := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, fieldSeparator)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		record, parseErr := parse(fields)
		if parseErr != nil {
			skipped++
			l.logDebug(logMsgSkippedLine, logAttrFile, fileName, logAttrLine, lineNumber, logAttrError, parseErr.Error())

			continue
		}

		records = append(records, record)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, errors.Join(ErrReadingFileFailed, scanErr)
	}

	l.logInfo(logMsgFileLoaded, logAttrFile, fileName, logAttrRecordCount, len(records), logAttrSkipped, skipped)

	return records, nil
}

func parseUser(fields []string) (core.User, error) {
	if len(fields) < userFieldCount {
		return core.User{}, errTooFewFields
	}

	return core.BuildUser(fields[0], fields[1], fields[2], fields[3], fields[4]), nil
}

func parseBook(fields []string) (core.Book, error) {
	if len(fields) < bookFieldCount {
		return core.Book{}, errTooFewFields
	}

	return core.Book{ID: fields[0], Title: fields[1], Author: fields[2]}, nil
}

func parseStatus(fields []string) (core.BookStatus, error) {
	if len(fields) < statusFieldCount {
		return core.BookStatus{}, errTooFewFields
	}

	return core.BookStatus{
		BookID:        fields[0],
		ShelfPosition: fields[1],
		Condition:     fields[2],
		Loanable:      strings.ToLower(fields[3]) == loanableTrue,
	}, nil
}

func parseLoan(fields []string) (loanstore.StorableLoan, error) {
	if len(fields) < loanFieldCount {
		return loanstore.StorableLoan{}, errTooFewFields
	}

	lentOn, err := time.Parse(core.DateLayout, fields[3])
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	dueOn, err := time.Parse(core.DateLayout, fields[4])
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	var returnedOn *time.Time

	if strings.ToLower(fields[5]) != noReturnDate {
		returned, parseErr := time.Parse(core.DateLayout, fields[5])
		if parseErr != nil {
			return loanstore.StorableLoan{}, parseErr
		}

		returnedOn = &returned
	}

	fine, err := strconv.ParseFloat(fields[6], 64)
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	renewals, err := strconv.Atoi(fields[7])
	if err != nil {
		return loanstore.StorableLoan{}, err
	}

	return loanstore.BuildStorableLoan(
		fields[0],
		fields[1],
		fields[2],
		lentOn,
		dueOn,
		returnedOn,
		core.MoneyFromFloat(fine).Cents(),
		renewals,
	)
}

func (l Loader) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l Loader) logDebug(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, args...)
	}
}
