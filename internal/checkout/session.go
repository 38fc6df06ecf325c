package checkout

import (
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/internal/cart"
	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
	pkgerrors "github.com/PAUpau912/maki-kape-pos-system/pkg/errors"
)

// Phase is the checkout lifecycle state. The session is always in exactly
// one phase; amount entry exists only during PhasePaymentCapture.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseCartOpen       Phase = "cart_open"
	PhasePaymentCapture Phase = "payment_capture"
)

// quickAmounts are the cash denominations offered as one-tap entries.
var quickAmounts = map[int64]bool{50: true, 100: true, 500: true, 1000: true}

// maxAmountDigits bounds digit-pad entry so appends cannot overflow int64.
const maxAmountDigits = 12

// Session is one operator's cart and checkout state. All methods are safe
// for concurrent use; the session serializes access internally.
type Session struct {
	mu       sync.Mutex
	cart     *cart.Cart
	phase    Phase
	amount   *int64
	settling bool
}

func NewSession() *Session {
	return &Session{cart: cart.New(), phase: PhaseIdle}
}

// AddProduct adds the product to the cart. Adding to an idle session
// opens the cart view, mirroring the storefront behavior.
func (s *Session) AddProduct(product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settling {
		return errSettlementInFlight()
	}
	if s.cart.Add(product) && s.phase == PhaseIdle {
		s.phase = PhaseCartOpen
	}
	return nil
}

// SetQuantity updates a cart line, clamped to the snapshotted stock.
func (s *Session) SetQuantity(productID int64, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settling {
		return errSettlementInFlight()
	}
	if !s.cart.SetQuantity(productID, qty) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}
	return nil
}

// RemoveItem drops a cart line unconditionally.
func (s *Session) RemoveItem(productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settling {
		return errSettlementInFlight()
	}
	s.cart.Remove(productID)
	return nil
}

// OpenCart shows the cart view.
func (s *Session) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle {
		s.phase = PhaseCartOpen
	}
}

// CloseCart hides the cart view, keeping its contents.
func (s *Session) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseCartOpen {
		s.phase = PhaseIdle
	}
}

// BeginCheckout moves to payment capture. Rejected while the cart is
// empty or when capture is already open.
func (s *Session) BeginCheckout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settling {
		return errSettlementInFlight()
	}
	if s.phase == PhasePaymentCapture {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout is already in progress")
	}
	if s.cart.Len() == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty, add items before checkout")
	}
	s.phase = PhasePaymentCapture
	s.amount = nil
	return nil
}

// Cancel abandons payment capture. The in-progress amount entry is
// discarded; the cart contents stay untouched.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settling {
		return errSettlementInFlight()
	}
	if s.phase != PhasePaymentCapture {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no checkout in progress")
	}
	s.phase = PhaseCartOpen
	s.amount = nil
	return nil
}

// PressDigit appends a digit to the amount entry. A lone "0" is replaced
// rather than appended to, so "0" then "5" yields 5.
func (s *Session) PressDigit(digit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCapture(); err != nil {
		return err
	}
	if digit < 0 || digit > 9 {
		return pkgerrors.New(pkgerrors.CodeValidation, "digit must be between 0 and 9")
	}

	prev := ""
	if s.amount != nil {
		prev = strconv.FormatInt(*s.amount, 10)
	}
	var next string
	if prev == "0" {
		next = strconv.Itoa(digit)
	} else {
		next = prev + strconv.Itoa(digit)
	}
	if len(next) > maxAmountDigits {
		return nil
	}
	value, err := strconv.ParseInt(next, 10, 64)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "amount entry overflow")
	}
	s.amount = &value
	return nil
}

// QuickAmount sets the amount directly to a cash denomination, overriding
// any in-progress digit entry.
func (s *Session) QuickAmount(value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCapture(); err != nil {
		return err
	}
	if !quickAmounts[value] {
		return pkgerrors.New(pkgerrors.CodeValidation, "unsupported quick amount")
	}
	s.amount = &value
	return nil
}

// SetExactAmount overrides the pad state with a direct numeric input.
func (s *Session) SetExactAmount(value int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCapture(); err != nil {
		return err
	}
	if value < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}
	s.amount = &value
	return nil
}

// ClearAmount resets the amount entry to empty.
func (s *Session) ClearAmount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireCapture(); err != nil {
		return err
	}
	s.amount = nil
	return nil
}

func (s *Session) requireCapture() error {
	if s.settling {
		return errSettlementInFlight()
	}
	if s.phase != PhasePaymentCapture {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "amount entry requires an open checkout")
	}
	return nil
}

func errSettlementInFlight() error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "settlement already in progress")
}

// View is a consistent snapshot of the session for the UI layer.
type View struct {
	Phase       Phase
	Lines       []cart.Line
	TotalAmount decimal.Decimal
	TotalItems  int
	AmountGiven *int64
	// ChangeDue is floored at zero for display. Nil until an amount is
	// entered.
	ChangeDue *decimal.Decimal
}

// View captures the current state under the session lock.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		Phase:       s.phase,
		Lines:       s.cart.Lines(),
		TotalAmount: s.cart.TotalAmount(),
		TotalItems:  s.cart.TotalItems(),
	}
	if s.amount != nil {
		amount := *s.amount
		view.AmountGiven = &amount
		change := decimal.NewFromInt(amount).Sub(view.TotalAmount)
		if change.IsNegative() {
			change = decimal.Zero
		}
		view.ChangeDue = &change
	}
	return view
}

// settlementSnapshot freezes everything Confirm needs while the writes run.
type settlementSnapshot struct {
	lines       []cart.Line
	totalAmount decimal.Decimal
	amountGiven int64
	changeDue   decimal.Decimal
}

// beginSettlement validates the cash-capture preconditions and marks the
// session as settling so a re-entrant confirm is rejected. The unfloored
// change is used for the sufficiency gate.
func (s *Session) beginSettlement() (settlementSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settling {
		return settlementSnapshot{}, errSettlementInFlight()
	}
	if s.phase != PhasePaymentCapture {
		return settlementSnapshot{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no checkout in progress")
	}
	if s.cart.Len() == 0 {
		return settlementSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty, cannot proceed with checkout")
	}
	if s.amount == nil {
		return settlementSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "enter the amount given")
	}

	total := s.cart.TotalAmount()
	change := decimal.NewFromInt(*s.amount).Sub(total)
	if change.IsNegative() {
		return settlementSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "insufficient amount given").
			WithDetails(map[string]any{"short_by": change.Neg().StringFixed(2)})
	}

	s.settling = true
	return settlementSnapshot{
		lines:       s.cart.Lines(),
		totalAmount: total,
		amountGiven: *s.amount,
		changeDue:   change,
	}, nil
}

// endSettlement releases the in-flight guard. On success the cart and
// amount entry are cleared and the session returns to idle; on failure
// everything stays put so the operator can retry.
func (s *Session) endSettlement(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settling = false
	if success {
		s.cart.Clear()
		s.amount = nil
		s.phase = PhaseIdle
	}
}
