package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/payment"
)

// checkoutState holds the M-Pesa checkout modal. One payment flow per opened
// modal; closing the modal discards it.
type checkoutState struct {
	active  bool
	flow    *payment.Flow
	snap    payment.Snapshot
	updates chan payment.Snapshot

	phone   textinput.Model
	address textinput.Model
	spin    spinner.Model

	focusIdx int
	busy     bool
	errMsg   string
	total    float64
}

func newCheckoutState() checkoutState {
	phone := textinput.New()
	phone.Placeholder = "M-Pesa phone (07XX or 254XXX)"
	phone.CharLimit = 16

	address := textinput.New()
	address.Placeholder = "Delivery address"
	address.CharLimit = 120

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return checkoutState{
		phone:   phone,
		address: address,
		spin:    spin,
		snap:    payment.Snapshot{State: payment.StateIdle},
	}
}

func (s *checkoutState) fields() []*textinput.Model {
	return []*textinput.Model{&s.phone, &s.address}
}

func (s *checkoutState) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	for i, field := range s.fields() {
		if i == s.focusIdx {
			cmd = field.Focus()
		} else {
			field.Blur()
		}
	}
	return cmd
}

func (s *checkoutState) close() {
	if s.flow != nil {
		s.flow.Close()
	}
	s.active = false
	s.flow = nil
	s.updates = nil
	s.snap = payment.Snapshot{State: payment.StateIdle}
	s.busy = false
	s.errMsg = ""
	s.focusIdx = 0
	s.phone.Blur()
	s.address.Blur()
}

// openCheckout starts a checkout for the current cart. Requires a signed-in
// session and a non-empty cart.
func (m Model) openCheckout() (tea.Model, tea.Cmd) {
	if m.session == nil || !m.session.IsAuthenticated() {
		m.notice = Notice{Level: NoticeError, Text: "Sign in to check out"}
		m.noticeAt = time.Now()
		m.currentView = ViewAuth
		return m, m.auth.focusFirst()
	}
	if m.cart.Count() == 0 {
		m.notice = Notice{Level: NoticeError, Text: "Your cart is empty"}
		m.noticeAt = time.Now()
		return m, nil
	}

	updates := make(chan payment.Snapshot, 64)
	onUpdate := func(snap payment.Snapshot) {
		select {
		case updates <- snap:
		default:
		}
	}
	clearCart := func(ctx context.Context) {
		m.cart.Clear(ctx)
	}

	m.checkout.active = true
	m.checkout.flow = payment.NewFlow(m.client, clearCart, onUpdate)
	m.checkout.updates = updates
	m.checkout.snap = payment.Snapshot{State: payment.StateIdle}
	m.checkout.total = m.cart.Total()
	m.checkout.errMsg = ""
	m.checkout.focusIdx = 0
	return m, tea.Batch(m.checkout.applyFocus(), waitPaymentCmd(updates))
}

// handleCheckoutKey processes keys while the checkout modal is open.
func (m Model) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.checkout.snap.State {
	case payment.StatePending:
		// No dismissal while an STK push is in flight.
		return m, nil

	case payment.StateSuccess:
		if msg.String() == "enter" {
			m.checkout.close()
			m.currentView = ViewOrders
			return m, fetchOrdersCmd(m.ctx, m.client)
		}
		return m, nil

	case payment.StateFailed, payment.StateTimeout:
		switch msg.String() {
		case "esc":
			m.checkout.close()
			return m, nil
		case "r", "enter":
			return m.retryPayment()
		}
		return m, nil
	}

	// Idle: the customer is filling in the form.
	if m.checkout.busy {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.checkout.close()
		return m, nil

	case "tab", "down":
		m.checkout.focusIdx = (m.checkout.focusIdx + 1) % len(m.checkout.fields())
		return m, m.checkout.applyFocus()

	case "shift+tab", "up":
		fields := len(m.checkout.fields())
		m.checkout.focusIdx = (m.checkout.focusIdx + fields - 1) % fields
		return m, m.checkout.applyFocus()

	case "enter":
		if m.checkout.focusIdx < len(m.checkout.fields())-1 {
			m.checkout.focusIdx++
			return m, m.checkout.applyFocus()
		}
		return m.submitCheckout()
	}

	return m.updateCheckoutInputs(msg)
}

// updateCheckoutInputs routes input events to the focused modal field.
func (m Model) updateCheckoutInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	fields := m.checkout.fields()
	if m.checkout.focusIdx >= len(fields) {
		return m, nil
	}
	var cmd tea.Cmd
	*fields[m.checkout.focusIdx], cmd = fields[m.checkout.focusIdx].Update(msg)
	return m, cmd
}

func (m Model) submitCheckout() (tea.Model, tea.Cmd) {
	msisdn, err := payment.NormalizePhone(m.checkout.phone.Value())
	if err != nil {
		m.checkout.errMsg = "enter a valid Safaricom number, e.g. 0712 345 678"
		return m, nil
	}
	address := strings.TrimSpace(m.checkout.address.Value())
	if address == "" {
		m.checkout.errMsg = "delivery address is required"
		return m, nil
	}

	m.checkout.busy = true
	m.checkout.errMsg = ""
	req := api.InitiatePaymentRequest{
		PhoneNumber: msisdn,
		TotalAmount: m.checkout.total,
		Address:     address,
	}
	return m, initiatePaymentCmd(m.ctx, m.client, req)
}

func (m Model) retryPayment() (tea.Model, tea.Cmd) {
	msisdn, err := payment.NormalizePhone(m.checkout.phone.Value())
	if err != nil {
		m.checkout.errMsg = "enter a valid Safaricom number"
		return m, nil
	}

	m.checkout.flow.Reset()
	m.checkout.busy = true
	m.checkout.errMsg = ""
	req := api.RetryPaymentRequest{
		OrderReference: m.checkout.snap.OrderReference,
		PhoneNumber:    msisdn,
	}
	return m, retryPaymentCmd(m.ctx, m.client, req)
}

func (m Model) handlePaymentStarted(msg paymentStartedMsg) (tea.Model, tea.Cmd) {
	if !m.checkout.active || m.checkout.flow == nil {
		return m, nil
	}
	m.checkout.busy = false
	if msg.err != nil {
		m.checkout.errMsg = msg.err.Error()
		return m, nil
	}
	m.checkout.flow.Start(m.ctx, msg.orderReference)
	m.checkout.snap = m.checkout.flow.Snapshot()
	return m, m.checkout.spin.Tick
}

func (m Model) handlePaymentUpdate(msg paymentMsg) (tea.Model, tea.Cmd) {
	if !m.checkout.active {
		return m, nil
	}
	m.checkout.snap = payment.Snapshot(msg)
	return m, waitPaymentCmd(m.checkout.updates)
}

// Messages

type paymentStartedMsg struct {
	orderReference string
	err            error
}

type paymentMsg payment.Snapshot

// Commands

func initiatePaymentCmd(ctx context.Context, client *api.Client, req api.InitiatePaymentRequest) tea.Cmd {
	return func() tea.Msg {
		init, err := client.InitiateMpesa(ctx, req)
		if err != nil {
			return paymentStartedMsg{err: err}
		}
		return paymentStartedMsg{orderReference: init.OrderReference}
	}
}

func retryPaymentCmd(ctx context.Context, client *api.Client, req api.RetryPaymentRequest) tea.Cmd {
	return func() tea.Msg {
		init, err := client.RetryMpesa(ctx, req)
		if err != nil {
			return paymentStartedMsg{err: err}
		}
		return paymentStartedMsg{orderReference: init.OrderReference}
	}
}

func waitPaymentCmd(ch <-chan payment.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return paymentMsg(snap)
	}
}

// renderCheckout draws the checkout modal.
func (m Model) renderCheckout() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.AccentText.Render("Checkout"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(fmt.Sprintf("Total: %s", formatKES(m.checkout.total))))
	b.WriteString("\n\n")

	switch m.checkout.snap.State {
	case payment.StatePending:
		b.WriteString(styles.InfoText.Render("Check your phone and enter your M-Pesa PIN"))
		b.WriteString("\n\n")
		b.WriteString(m.checkout.spin.View())
		b.WriteString(styles.Text.Render(fmt.Sprintf("Waiting for confirmation... %ds", m.checkout.snap.CountdownSeconds)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render("Order " + m.checkout.snap.OrderReference))

	case payment.StateSuccess:
		b.WriteString(styles.SuccessText.Render("Payment received, asante!"))
		b.WriteString("\n")
		if m.checkout.snap.TransactionID != "" {
			b.WriteString(styles.MutedText.Render("M-Pesa ref " + m.checkout.snap.TransactionID))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.Footer.Render("enter: view your orders"))

	case payment.StateFailed:
		reason := m.checkout.snap.FailureReason
		if reason == "" {
			reason = "The payment was declined"
		}
		b.WriteString(styles.DangerText.Render(reason))
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render("r: retry  esc: close"))

	case payment.StateTimeout:
		b.WriteString(styles.WarningText.Render("No confirmation received in time"))
		b.WriteString("\n\n")
		b.WriteString(styles.Footer.Render("r: retry  esc: close"))

	default:
		b.WriteString(m.checkout.phone.View())
		b.WriteString("\n")
		b.WriteString(m.checkout.address.View())
		b.WriteString("\n\n")
		if m.checkout.busy {
			b.WriteString(styles.InfoText.Render("Sending STK push..."))
		} else {
			b.WriteString(styles.Footer.Render("enter: pay with M-Pesa  esc: cancel"))
		}
	}

	if m.checkout.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(m.checkout.errMsg))
	}

	return styles.Panel.Render(b.String())
}
