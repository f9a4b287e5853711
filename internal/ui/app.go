// Package ui provides the Bubble Tea storefront interface for duka.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dukatech/duka/internal/api"
	"github.com/dukatech/duka/internal/catalog"
	"github.com/dukatech/duka/internal/payment"
	"github.com/dukatech/duka/internal/prefs"
	"github.com/dukatech/duka/internal/store"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewCart
	ViewCompare
	ViewWishlist
	ViewOrders
	ViewAuth
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Client   *api.Client
	Catalog  *catalog.Store
	Session  *store.Session
	Cart     *store.Cart
	Compare  *store.Compare
	Wishlist *store.Wishlist
	Notices  <-chan Notice
	PollTick time.Duration

	ThemeName string
	PrefsPath string
	LastEmail string // prefills the login form
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	client    *api.Client
	catalog   *catalog.Store
	session   *store.Session
	cart      *store.Cart
	compare   *store.Compare
	wishlist  *store.Wishlist
	notices   <-chan Notice
	pollTick  time.Duration
	prefsPath string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Data state
	snapshot    catalog.Snapshot
	lastUpdated time.Time

	// Per-view cursor positions
	selected map[View]int

	// Orders state
	orders    []api.Order
	ordersErr error

	// Status bar notice
	notice   Notice
	noticeAt time.Time

	// Login / signup form
	auth authState

	// Checkout modal
	checkout checkoutState
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:         ctx,
		client:      opts.Client,
		catalog:     opts.Catalog,
		session:     opts.Session,
		cart:        opts.Cart,
		compare:     opts.Compare,
		wishlist:    opts.Wishlist,
		notices:     opts.Notices,
		pollTick:    pollTick,
		prefsPath:   prefsPath,
		theme:       GetTheme(opts.ThemeName),
		currentView: ViewCatalog,
		selected:    make(map[View]int),
		auth:        newAuthState(),
		checkout:    newCheckoutState(),
	}
	if opts.LastEmail != "" {
		m.auth.email.SetValue(opts.LastEmail)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.catalog != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.catalog))
	}
	if m.notices != nil {
		cmds = append(cmds, waitNoticeCmd(m.notices))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = catalog.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampCursors()
		return m, nil

	case noticeMsg:
		m.notice = Notice(msg)
		m.noticeAt = time.Now()
		return m, waitNoticeCmd(m.notices)

	case actionDoneMsg:
		// Store notices carry the user-facing outcome; nothing more to do.
		return m, nil

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case ordersMsg:
		m.orders = msg.orders
		m.ordersErr = msg.err
		m.clampCursors()
		return m, nil

	case paymentStartedMsg:
		return m.handlePaymentStarted(msg)

	case paymentMsg:
		return m.handlePaymentUpdate(msg)

	case spinner.TickMsg:
		if m.checkout.active && m.checkout.snap.State == payment.StatePending {
			var cmd tea.Cmd
			m.checkout.spin, cmd = m.checkout.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.checkout.active {
		return m.updateCheckoutInputs(msg)
	}
	if m.currentView == ViewAuth {
		return m.updateAuthInputs(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}
	if m.checkout.active {
		return m.renderCheckout()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.checkout.active {
		return m.handleCheckoutKey(msg)
	}

	if m.currentView == ViewAuth {
		return m.handleAuthKey(msg)
	}

	// Global keys
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case "1", "esc":
		m.currentView = ViewCatalog
		return m, nil

	case "2":
		m.currentView = ViewCart
		return m, nil

	case "3":
		m.currentView = ViewCompare
		return m, nil

	case "4":
		m.currentView = ViewWishlist
		return m, nil

	case "5":
		m.currentView = ViewOrders
		return m, fetchOrdersCmd(m.ctx, m.client)

	case "L":
		if m.session != nil && m.session.IsAuthenticated() {
			return m, logoutCmd(m.ctx, m.session)
		}
		m.currentView = ViewAuth
		return m, m.auth.focusFirst()

	case "tab":
		m.currentView = nextView(m.currentView)
		if m.currentView == ViewOrders {
			return m, fetchOrdersCmd(m.ctx, m.client)
		}
		return m, nil
	}

	return m.handleViewKey(msg)
}

func nextView(v View) View {
	switch v {
	case ViewCatalog:
		return ViewCart
	case ViewCart:
		return ViewCompare
	case ViewCompare:
		return ViewWishlist
	case ViewWishlist:
		return ViewOrders
	default:
		return ViewCatalog
	}
}

// handleViewKey processes keys for the current list view.
func (m Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := m.rowCount()

	switch msg.String() {
	case "j", "down":
		if m.selected[m.currentView] < count-1 {
			m.selected[m.currentView]++
		}
		return m, nil
	case "k", "up":
		if m.selected[m.currentView] > 0 {
			m.selected[m.currentView]--
		}
		return m, nil
	case "g", "home":
		m.selected[m.currentView] = 0
		return m, nil
	case "G", "end":
		if count > 0 {
			m.selected[m.currentView] = count - 1
		}
		return m, nil
	}

	switch m.currentView {
	case ViewCatalog:
		return m.handleCatalogKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewCompare:
		return m.handleCompareKey(msg)
	case ViewWishlist:
		return m.handleWishlistKey(msg)
	case ViewOrders:
		return m.handleOrdersKey(msg)
	}
	return m, nil
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	product, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}

	switch msg.String() {
	case "a", "enter":
		variation := defaultVariation(product)
		return m, actionCmd(m.ctx, func(ctx context.Context) error {
			return m.cart.AddItem(ctx, product.ID, variation, 1)
		})
	case "m":
		return m, actionCmd(m.ctx, func(ctx context.Context) error {
			return m.compare.AddItem(ctx, product)
		})
	case "w":
		return m, actionCmd(m.ctx, func(ctx context.Context) error {
			return m.wishlist.AddItem(ctx, product.ID)
		})
	case "r":
		return m, nil // catalog refreshes on the poll tick
	}
	return m, nil
}

func (m Model) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := m.cart.Items()
	idx := m.selected[ViewCart]

	switch msg.String() {
	case "+", "=":
		if idx < len(lines) {
			line := lines[idx]
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.cart.UpdateQuantity(ctx, line.ProductID, line.Quantity+1, line.VariationKey)
			})
		}
	case "-":
		if idx < len(lines) {
			line := lines[idx]
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.cart.UpdateQuantity(ctx, line.ProductID, line.Quantity-1, line.VariationKey)
			})
		}
	case "x":
		if idx < len(lines) {
			line := lines[idx]
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.cart.RemoveItem(ctx, line.ProductID, line.VariationKey)
			})
		}
	case "C":
		return m, actionCmd(m.ctx, func(ctx context.Context) error {
			m.cart.Clear(ctx)
			return nil
		})
	case "o", "enter":
		return m.openCheckout()
	}
	return m, nil
}

func (m Model) handleCompareKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.compare.Items()
	idx := m.selected[ViewCompare]

	switch msg.String() {
	case "x":
		if idx < len(items) {
			id := items[idx].ID
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.compare.RemoveItem(ctx, id)
			})
		}
	case "C":
		return m, actionCmd(m.ctx, func(ctx context.Context) error {
			m.compare.Clear(ctx)
			return nil
		})
	}
	return m, nil
}

func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.wishlist.Items()
	idx := m.selected[ViewWishlist]

	switch msg.String() {
	case "x":
		if idx < len(items) {
			id := items[idx].ProductID
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.wishlist.RemoveItem(ctx, id)
			})
		}
	case "a", "enter":
		if idx < len(items) {
			item := items[idx]
			return m, actionCmd(m.ctx, func(ctx context.Context) error {
				return m.cart.AddItem(ctx, item.ProductID, &api.Variation{Price: item.Price}, 1)
			})
		}
	}
	return m, nil
}

func (m Model) handleOrdersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idx := m.selected[ViewOrders]

	switch msg.String() {
	case "r":
		return m, fetchOrdersCmd(m.ctx, m.client)
	case "c":
		if idx < len(m.orders) {
			order := m.orders[idx]
			return m, cancelOrderCmd(m.ctx, m.client, order.ID)
		}
	}
	return m, nil
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.catalog != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.catalog))
	}

	// Expire stale status bar notices
	if m.notice.Text != "" && time.Since(m.noticeAt) > noticeTTL {
		m.notice = Notice{}
	}

	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

func (m Model) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.auth.busy = false
	if msg.err != nil {
		m.auth.errMsg = msg.err.Error()
		return m, nil
	}
	m.auth.errMsg = ""
	m.auth.reset()
	m.currentView = ViewCatalog
	m.savePrefs()
	return m, nil
}

// selectedProduct returns the catalog row under the cursor.
func (m Model) selectedProduct() (api.Product, bool) {
	idx := m.selected[ViewCatalog]
	if idx < 0 || idx >= len(m.snapshot.Products) {
		return api.Product{}, false
	}
	return m.snapshot.Products[idx], true
}

// defaultVariation picks the variation added from the catalog list. The first
// variant wins; products without variants carry their own price.
func defaultVariation(product api.Product) *api.Variation {
	if len(product.Variations) > 0 {
		v := product.Variations[0]
		return &v
	}
	return &api.Variation{Price: product.Price}
}

// rowCount returns the number of rows in the current view.
func (m Model) rowCount() int {
	switch m.currentView {
	case ViewCatalog:
		return len(m.snapshot.Products)
	case ViewCart:
		return len(m.cart.Items())
	case ViewCompare:
		return len(m.compare.Items())
	case ViewWishlist:
		return len(m.wishlist.Items())
	case ViewOrders:
		return len(m.orders)
	}
	return 0
}

// clampCursors keeps cursor positions inside shrinking lists.
func (m *Model) clampCursors() {
	for view, idx := range m.selected {
		saved := m.currentView
		m.currentView = view
		count := m.rowCount()
		m.currentView = saved
		if idx >= count {
			if count > 0 {
				m.selected[view] = count - 1
			} else {
				m.selected[view] = 0
			}
		}
	}
}

func (m Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name}
	if m.session != nil {
		p.LastEmail = m.session.User().Email
	}
	if p.LastEmail == "" {
		p.LastEmail = m.auth.email.Value()
	}
	_ = prefs.Save(m.prefsPath, p)
}

// Messages

type tickMsg time.Time

type snapshotMsg catalog.Snapshot

type noticeMsg Notice

type actionDoneMsg struct{ err error }

type authDoneMsg struct{ err error }

type ordersMsg struct {
	orders []api.Order
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *catalog.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func waitNoticeCmd(ch <-chan Notice) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg(n)
	}
}

// actionCmd runs a store mutation off the Update loop. Outcomes surface
// through the store's notifier, so the result message carries only the error.
func actionCmd(ctx context.Context, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: fn(ctx)}
	}
}

func fetchOrdersCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.FetchOrders(ctx)
		return ordersMsg{orders: orders, err: err}
	}
}

func cancelOrderCmd(ctx context.Context, client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := client.CancelOrder(ctx, id); err != nil {
			return ordersMsg{err: err}
		}
		orders, err := client.FetchOrders(ctx)
		return ordersMsg{orders: orders, err: err}
	}
}

func logoutCmd(ctx context.Context, session *store.Session) tea.Cmd {
	return func() tea.Msg {
		session.Logout(ctx)
		return actionDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
