// Package finance estimates repayments on an amortised car loan.
package finance

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// InvalidInputMessage is shown in the result area when validation fails
const InvalidInputMessage = "Please enter valid values for all required fields."

// ErrInvalidInput is returned when price, rate or term is not strictly positive
var ErrInvalidInput = errors.New("price, rate and term must be positive")

// Input is the finance form. Rate is a yearly percentage and Term is in months.
type Input struct {
	Price float64 `json:"price"`
	Down  float64 `json:"down"`
	Rate  float64 `json:"rate"`
	Term  int     `json:"term"`
}

// Result is the repayment estimate
type Result struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayment   float64 `json:"total_payment"`
}

// Line is one labelled amount of a formatted result
type Line struct {
	Label  string
	Amount string
}

// ParseInput reads the finance form. Anything that is not a number becomes 0.
func ParseInput(vars url.Values) Input {
	return Input{
		Price: parseFloat(vars.Get("price")),
		Down:  parseFloat(vars.Get("down")),
		Rate:  parseFloat(vars.Get("rate")),
		Term:  parseInt(vars.Get("term")),
	}
}

// Validate checks the required fields. Down payment is not checked against price.
func (in Input) Validate() error {
	if in.Price <= 0 || in.Rate <= 0 || in.Term <= 0 {
		return ErrInvalidInput
	}
	return nil
}

// Compute returns the monthly payment, total interest and total paid
func Compute(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	principal := in.Price - in.Down
	monthlyRate := in.Rate / 100 / 12
	term := float64(in.Term)

	// A rate too small to move (1+r)^n off 1 is treated as interest free.
	var monthly float64
	growth := math.Pow(1+monthlyRate, term)
	if monthlyRate == 0 || growth == 1 {
		monthly = principal / term
	} else {
		monthly = principal * monthlyRate * growth / (growth - 1)
	}
	total := monthly * term

	return Result{
		Principal:      principal,
		MonthlyPayment: monthly,
		TotalInterest:  total - principal,
		TotalPayment:   total,
	}, nil
}

// Lines formats the result to two decimal places
func (r Result) Lines() []Line {
	return []Line{
		{Label: "Monthly Payment", Amount: FormatMoney(r.MonthlyPayment)},
		{Label: "Total Interest", Amount: FormatMoney(r.TotalInterest)},
		{Label: "Total Payment", Amount: FormatMoney(r.TotalPayment)},
	}
}

// FormatMoney renders an amount with two decimals
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// parseFloat reads the leading number of s, as a browser form would. The
// numeric prefix is found in one pass and parsed once.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := scanSign(s, 0)
	mantissa := end
	end = scanDigits(s, end)
	digits := end - mantissa
	if end < len(s) && s[end] == '.' {
		frac := scanDigits(s, end+1)
		digits += frac - end - 1
		end = frac
	}
	if digits == 0 {
		return 0
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := scanSign(s, end+1)
		if expEnd := scanDigits(s, exp); expEnd > exp {
			end = expEnd
		}
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

func parseInt(s string) int {
	s = strings.TrimSpace(s)
	end := scanDigits(s, scanSign(s, 0))
	i, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return i
}

func scanSign(s string, i int) int {
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		return i + 1
	}
	return i
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
