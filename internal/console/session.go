// Package console is the interactive menu: it prompts the operator, calls the
// services, and prints results in English or Marathi.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/service"
)

const width = 50

// Menu options, numbered as shown to the operator.
const (
	OptionAddProduct = iota + 1
	OptionViewProducts
	OptionUpdateStock
	OptionDeleteProduct
	OptionNewCustomer
	OptionNewBill
	OptionViewSales
	OptionExit
)

var menu = []struct {
	option int
	label  string
}{
	{OptionAddProduct, "Add Product"},
	{OptionViewProducts, "View Products"},
	{OptionUpdateStock, "Update Stock"},
	{OptionDeleteProduct, "Delete Product"},
	{OptionNewCustomer, "New Customer"},
	{OptionNewBill, "Generate Bill"},
	{OptionViewSales, "View Sales"},
	{OptionExit, "Exit"},
}

// Services are the operations the session drives.
type Services struct {
	Catalog   *service.CatalogService
	Customers *service.CustomerService
	Billing   *service.BillingService
}

// Options configure a Session.
type Options struct {
	// Language is "en" or "mr". Anything else starts in English.
	Language string

	// TaxBands are the usual GST rates, shown as a hint and checked
	// advisorily when a product is added.
	TaxBands []decimal.Decimal

	CurrencyPlaces int32
}

// Session runs the menu loop over an input and output stream.
type Session struct {
	svc     Services
	in      *bufio.Scanner
	out     io.Writer
	lang    language.Tag
	printer *message.Printer
	bands   []decimal.Decimal
	places  int32
}

// NewSession creates a session reading operator input from in.
func NewSession(svc Services, in io.Reader, out io.Writer, opts Options) *Session {
	s := &Session{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		bands:  opts.TaxBands,
		places: opts.CurrencyPlaces,
	}
	if s.places <= 0 {
		s.places = service.DefaultCurrencyPlaces
	}
	s.setLanguage(language.English)
	if opts.Language == "mr" {
		s.setLanguage(language.Marathi)
	}
	return s
}

// Language returns the current menu language.
func (s *Session) Language() language.Tag { return s.lang }

func (s *Session) setLanguage(tag language.Tag) {
	s.lang = tag
	s.printer = newPrinter(tag)
}

// ToggleLanguage switches between English and Marathi.
func (s *Session) ToggleLanguage() {
	if s.lang == language.Marathi {
		s.setLanguage(language.English)
		s.println("Switched to English!")
		return
	}
	s.setLanguage(language.Marathi)
	s.println("Switched to Marathi!")
}

// Warn prints a localized notice, such as a ledger that failed to load.
func (s *Session) Warn(loadErr error) {
	s.println("Warning: ledger could not be loaded (%v).", loadErr)
	s.println("Starting with an empty shop.")
}

// Run shows the menu until the operator exits, input ends, or ctx is
// cancelled. End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.showMenu()
		choice, err := s.prompt("Enter choice: ")
		if err != nil {
			return s.endOfInput(err)
		}

		if strings.EqualFold(choice, "l") {
			s.ToggleLanguage()
			continue
		}

		option, err := strconv.Atoi(choice)
		if err != nil {
			s.println("Invalid choice!")
			continue
		}

		if option == OptionExit {
			s.println("Exiting...")
			return nil
		}
		if err := s.dispatch(ctx, option); err != nil {
			return s.endOfInput(err)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, option int) error {
	switch option {
	case OptionAddProduct:
		return s.addProduct(ctx)
	case OptionViewProducts:
		s.viewProducts()
		return nil
	case OptionUpdateStock:
		return s.updateStock(ctx)
	case OptionDeleteProduct:
		return s.deleteProduct(ctx)
	case OptionNewCustomer:
		return s.newCustomer(ctx)
	case OptionNewBill:
		return s.newBill(ctx)
	case OptionViewSales:
		s.viewSales()
		return nil
	default:
		s.println("Invalid choice!")
		return nil
	}
}

func (s *Session) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

func (s *Session) showMenu() {
	fmt.Fprintln(s.out)
	s.banner("Kirana Shop Management")
	for _, item := range menu {
		fmt.Fprintf(s.out, "%d. %s\n", item.option, s.printer.Sprintf(item.label))
	}
	s.rule("=")
	s.println("Press 'L' to toggle Marathi/English")
}

// prompt prints a localized label and reads one trimmed line. It returns
// io.EOF when input ends.
func (s *Session) prompt(label string, args ...any) (string, error) {
	s.printer.Fprintf(s.out, label, args...)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) println(key string, args ...any) {
	s.printer.Fprintf(s.out, key, args...)
	fmt.Fprintln(s.out)
}

func (s *Session) banner(key string) {
	title := s.printer.Sprintf(key)
	s.rule("=")
	fmt.Fprintln(s.out, center(title, width))
	s.rule("=")
}

func (s *Session) rule(ch string) {
	fmt.Fprintln(s.out, strings.Repeat(ch, width))
}

func (s *Session) money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(s.places)
}

// reportError prints a recoverable failure. Save failures are called out
// because the change was rolled back.
func (s *Session) reportError(err error) {
	var perr *models.PersistenceError
	switch {
	case errors.As(err, &perr):
		s.println("Could not save, nothing was changed: %v", err)
	case errors.Is(err, models.ErrNotFound):
		s.println("Not found: %v", err)
	default:
		s.println("Invalid input: %v", err)
	}
	slog.Debug("Menu operation failed", "error", err)
}

func center(text string, w int) string {
	n := utf8.RuneCountInString(text)
	if n >= w {
		return text
	}
	return strings.Repeat(" ", (w-n)/2) + text
}
