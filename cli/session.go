// Package cli implements the interactive loan calculator menu.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"loan-interest/domain"
	"loan-interest/service"
)

const (
	choiceAdd = iota + 1
	choiceUpdate
	choiceShow
	choiceShowAll
	choiceExit
)

// Session reads menu choices and loan parameters from in and writes prompts
// and reports to out.
type Session struct {
	loans *service.LoanService
	in    *bufio.Reader
	out   io.Writer
}

func NewSession(loans *service.LoanService, in io.Reader, out io.Writer) *Session {
	return &Session{
		loans: loans,
		in:    bufio.NewReader(in),
		out:   out,
	}
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Errors from individual commands are reported and the session continues.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Loan Interest Calculator")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		s.printMenu()
		line, err := s.readLine("Please enter your choice: ")
		if err != nil {
			return endOfInput(err)
		}

		choice, convErr := strconv.Atoi(line)
		if convErr != nil {
			choice = 0
		}

		switch choice {
		case choiceAdd:
			err = s.addLoan()
		case choiceUpdate:
			err = s.updateLoan()
		case choiceShow:
			err = s.showLoan()
		case choiceShowAll:
			s.showAllLoans()
		case choiceExit:
			fmt.Fprintln(s.out, "Exiting...")
			return nil
		default:
			fmt.Fprintln(s.out, "\nInvalid choice! Please enter an integer from 1-5.")
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(s.out, "Error: %v\n\n", err)
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprintln(s.out, "------------------------")
	fmt.Fprintln(s.out, "1. Add Loan")
	fmt.Fprintln(s.out, "2. Update Loan")
	fmt.Fprintln(s.out, "3. Show Loan Information")
	fmt.Fprintln(s.out, "4. Show All Loans")
	fmt.Fprintln(s.out, "5. Exit")
}

func (s *Session) addLoan() error {
	params, err := s.promptParams(domain.DefaultLoanParams())
	if err != nil {
		return err
	}
	id, err := s.loans.Create(params)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loan added with ID: %d\n\n", id)
	return nil
}

func (s *Session) updateLoan() error {
	id, err := s.promptLoanID("Enter the Loan ID to update: ")
	if err != nil {
		return err
	}
	current, ok := s.loans.Get(id)
	if !ok {
		return fmt.Errorf("loan with ID %d: %w", id, service.ErrLoanNotFound)
	}

	params, err := s.promptParams(current.LoanParams)
	if err != nil {
		return err
	}
	if err := s.loans.Update(id, params); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Loan with ID %d updated successfully!\n\n", id)
	return nil
}

func (s *Session) showLoan() error {
	id, err := s.promptLoanID("Enter the Loan ID: ")
	if err != nil {
		return err
	}
	loan, ok := s.loans.Get(id)
	if !ok {
		return fmt.Errorf("loan with ID %d: %w", id, service.ErrLoanNotFound)
	}

	fmt.Fprintln(s.out, "Loan Interest Calculation Results")
	fmt.Fprintln(s.out, "--------------------------------")
	writeLoan(s.out, loan)
	fmt.Fprintln(s.out)
	return nil
}

func (s *Session) showAllLoans() {
	entries := s.loans.List()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No loans recorded.")
		return
	}

	fmt.Fprintln(s.out, "All Loans:")
	for _, e := range entries {
		fmt.Fprintf(s.out, "Loan ID: %d\n", e.ID)
		writeLoan(s.out, e.Loan)
		fmt.Fprintln(s.out)
	}
}

// promptParams asks for every loan parameter. An empty answer keeps the value
// from current. Rates are entered in percent.
func (s *Session) promptParams(current domain.LoanParams) (domain.LoanParams, error) {
	fmt.Fprintln(s.out, "Update Loan Parameters")
	fmt.Fprintln(s.out, "----------------------")

	p := current
	var err error

	if p.StartDate, err = s.promptDate("Start Date (YYYY-MM-DD)", current.StartDate); err != nil {
		return current, err
	}
	if p.EndDate, err = s.promptDate("End Date (YYYY-MM-DD)", current.EndDate); err != nil {
		return current, err
	}
	if p.Principal, err = s.promptFloat("Loan Amount", current.Principal, exact(current.Principal), 1); err != nil {
		return current, err
	}

	currency, err := s.readLine(fmt.Sprintf("Loan Currency [%s]: ", current.Currency))
	if err != nil {
		return current, err
	}
	if currency != "" {
		p.Currency = currency
	}

	if p.BaseRate, err = s.promptFloat("Base Interest Rate (%)", current.BaseRate, percent(current.BaseRate), 100); err != nil {
		return current, err
	}
	if p.Margin, err = s.promptFloat("Margin (%)", current.Margin, percent(current.Margin), 100); err != nil {
		return current, err
	}

	if err := p.Validate(); err != nil {
		return current, err
	}

	fmt.Fprintln(s.out, "Loan parameters updated successfully!")
	fmt.Fprintln(s.out)
	return p, nil
}

func (s *Session) promptDate(label string, current time.Time) (time.Time, error) {
	line, err := s.readLine(fmt.Sprintf("%s [%s]: ", label, current.Format(domain.DateLayout)))
	if err != nil {
		return current, err
	}
	if line == "" {
		return current, nil
	}
	return domain.ParseDate(line)
}

// promptFloat reads a number and divides it by scale. An empty answer
// returns current unchanged.
func (s *Session) promptFloat(label string, current float64, shown string, scale float64) (float64, error) {
	line, err := s.readLine(fmt.Sprintf("%s [%s]: ", label, shown))
	if err != nil {
		return current, err
	}
	if line == "" {
		return current, nil
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return current, fmt.Errorf("invalid number %q for %s", line, strings.ToLower(label))
	}
	return v / scale, nil
}

func (s *Session) promptLoanID(prompt string) (domain.LoanID, error) {
	line, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(line, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid loan ID %q", line)
	}
	return domain.LoanID(id), nil
}

// readLine prints prompt and returns the next trimmed input line. A final
// line without a newline is returned before io.EOF.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
