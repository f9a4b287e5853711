package ui

import (
	"fmt"
	"strings"

	"github.com/dukatech/duka/internal/api"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderContent renders the main content area based on the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewCatalog:
		return m.renderCatalog()
	case ViewCart:
		return m.renderCart()
	case ViewCompare:
		return m.renderCompare()
	case ViewWishlist:
		return m.renderWishlist()
	case ViewOrders:
		return m.renderOrders()
	case ViewAuth:
		return m.renderAuth()
	default:
		return ""
	}
}

// renderHeader draws the logo line with connection and session state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	var parts []string
	parts = append(parts, styles.Logo.Render(" duka "))

	if m.snapshot.IsOffline() {
		parts = append(parts, styles.DangerText.Render("offline"))
	} else if m.snapshot.HasData {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d products", len(m.snapshot.Products))))
	}

	if count := m.cart.Count(); count > 0 {
		parts = append(parts, styles.AccentText.Render(fmt.Sprintf("cart %d (%s)", count, formatKES(m.cart.Total()))))
	}

	if m.session != nil && m.session.IsAuthenticated() {
		parts = append(parts, styles.Text.Render(m.session.User().Email))
	} else {
		parts = append(parts, styles.MutedText.Render("guest"))
	}

	return styles.Header.Render(strings.Join(parts, "  "))
}

// renderCommandBar draws the per-view key hints.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	common := "1:shop 2:cart 3:compare 4:wishlist 5:orders"
	var extra string
	switch m.currentView {
	case ViewCatalog:
		extra = "a:add w:wishlist m:compare"
	case ViewCart:
		extra = "+/-:qty x:remove C:clear o:checkout"
	case ViewCompare:
		extra = "x:remove C:clear"
	case ViewWishlist:
		extra = "a:to cart x:remove"
	case ViewOrders:
		extra = "r:refresh c:cancel"
	case ViewAuth:
		extra = "enter:submit ctrl+s:login/signup esc:back"
	}

	login := ternary(m.session != nil && m.session.IsAuthenticated(), "L:logout", "L:login")
	return styles.Footer.Render(strings.Join([]string{common, extra, login, "?:help q:quit"}, "  |  "))
}

// renderStatusBar draws the transient notice line.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()
	if m.notice.Text == "" {
		return styles.FaintText.Render("")
	}
	if m.notice.Level == NoticeError {
		return styles.DangerText.Render(m.notice.Text)
	}
	return styles.SuccessText.Render(m.notice.Text)
}

// renderCatalog draws the product list.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()

	if !m.snapshot.HasData {
		if m.snapshot.LastError != nil {
			return styles.DangerText.Render("Cannot reach the shop: " + m.snapshot.LastError.Error())
		}
		return styles.MutedText.Render("Loading catalog...")
	}
	if len(m.snapshot.Products) == 0 {
		return styles.MutedText.Render("No products in the catalog")
	}

	var b strings.Builder
	header := padRight("PRODUCT", 34) + padRight("BRAND", 12) + padRight("CATEGORY", 14) + padRight("PRICE", 16) + "STOCK"
	b.WriteString(styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, product := range m.snapshot.Products {
		marks := ""
		if m.wishlist.Contains(product.ID) {
			marks += "w"
		}
		if _, ok := m.cart.Entry(product.ID, cartKeyFor(product)); ok {
			marks += "c"
		}

		row := padRight(truncate(product.Name, 32), 34) +
			padRight(truncate(product.Brand, 10), 12) +
			padRight(truncate(product.Category, 12), 14) +
			padRight(formatKES(product.Price), 16) +
			ternary(product.InStock, "in stock", "out") +
			ternary(marks != "", "  ["+marks+"]", "")

		if i == m.selected[ViewCatalog] {
			b.WriteString(styles.Selected.Render(row))
		} else if !product.InStock {
			b.WriteString(styles.FaintText.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cartKeyFor mirrors the variation picked when adding from the catalog list.
func cartKeyFor(product api.Product) string {
	return defaultVariation(product).Key()
}

// renderCart draws the cart lines with a running total.
func (m Model) renderCart() string {
	styles := m.theme.Styles()

	lines := m.cart.Items()
	if len(lines) == 0 {
		return styles.MutedText.Render("Your cart is empty. Press 1 to browse the shop.")
	}

	var b strings.Builder
	header := padRight("PRODUCT", 34) + padRight("VARIANT", 18) + padRight("QTY", 6) + padRight("PRICE", 16) + "LINE"
	b.WriteString(styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, line := range lines {
		name := line.ProductID
		if product, ok := m.catalog.Product(line.ProductID); ok {
			name = product.Name
		}
		row := padRight(truncate(name, 32), 34) +
			padRight(truncate(variationLabel(line.VariationKey), 16), 18) +
			padRight(fmt.Sprintf("%d", line.Quantity), 6) +
			padRight(formatKES(line.Price), 16) +
			formatKES(line.Price*float64(line.Quantity))

		if i == m.selected[ViewCart] {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render("Total: " + formatKES(m.cart.Total())))
	return b.String()
}

// renderCompare draws the comparison tray.
func (m Model) renderCompare() string {
	styles := m.theme.Styles()

	items := m.compare.Items()
	if len(items) == 0 {
		if ids := m.compare.IDs(); len(ids) > 0 {
			return styles.MutedText.Render(fmt.Sprintf("%d saved items waiting for catalog data...", len(ids)))
		}
		return styles.MutedText.Render("Nothing to compare. Press m on a product to add it (up to 3).")
	}

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("Comparing %d of 3", len(items))))
	b.WriteString("\n\n")

	for i, product := range items {
		var detail strings.Builder
		detail.WriteString(styles.AccentText.Render(product.Name))
		detail.WriteString("\n")
		detail.WriteString(styles.Text.Render(product.Brand + "  " + product.Category))
		detail.WriteString("\n")
		detail.WriteString(styles.Text.Render(formatKES(product.Price)))
		detail.WriteString("\n")
		for _, v := range product.Variations {
			detail.WriteString(styles.MutedText.Render(fmt.Sprintf("%s: %s", v.Key(), formatKES(v.Price))))
			detail.WriteString("\n")
		}
		detail.WriteString(styles.FaintText.Render(ternary(product.InStock, "in stock", "out of stock")))

		panel := styles.Panel
		if i == m.selected[ViewCompare] {
			panel = styles.PanelFocus
		}
		b.WriteString(panel.Render(detail.String()))
		b.WriteString("\n")
	}
	return b.String()
}

// renderWishlist draws the wishlist.
func (m Model) renderWishlist() string {
	styles := m.theme.Styles()

	if m.session == nil || !m.session.IsAuthenticated() {
		return styles.MutedText.Render("Sign in to keep a wishlist. Press L to log in.")
	}

	items := m.wishlist.Items()
	if len(items) == 0 {
		return styles.MutedText.Render("Your wishlist is empty. Press w on a product to save it.")
	}

	var b strings.Builder
	header := padRight("PRODUCT", 40) + "PRICE"
	b.WriteString(styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, item := range items {
		row := padRight(truncate(item.Name, 38), 40) + formatKES(item.Price)
		if i == m.selected[ViewWishlist] {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(styles.Text.Render(row))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderOrders draws the order history.
func (m Model) renderOrders() string {
	styles := m.theme.Styles()

	if m.session == nil || !m.session.IsAuthenticated() {
		return styles.MutedText.Render("Sign in to see your orders. Press L to log in.")
	}
	if m.ordersErr != nil {
		return styles.DangerText.Render("Cannot load orders: " + m.ordersErr.Error())
	}
	if len(m.orders) == 0 {
		return styles.MutedText.Render("No orders yet.")
	}

	var b strings.Builder
	header := padRight("REFERENCE", 20) + padRight("PLACED", 22) + padRight("ITEMS", 8) + padRight("TOTAL", 16) + "STATUS"
	b.WriteString(styles.MutedText.Render(header))
	b.WriteString("\n")

	for i, order := range m.orders {
		row := padRight(truncate(order.Reference, 18), 20) +
			padRight(truncate(order.CreatedAt, 20), 22) +
			padRight(fmt.Sprintf("%d", len(order.Items)), 8) +
			padRight(formatKES(order.Total), 16)

		badge := styles.StatusStyle(strings.ToLower(order.Status)).Render(titleCase(order.Status))
		if i == m.selected[ViewOrders] {
			b.WriteString(styles.Selected.Render(row) + " " + badge)
		} else {
			b.WriteString(styles.Text.Render(row) + " " + badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderAuth draws the login/signup form.
func (m Model) renderAuth() string {
	styles := m.theme.Styles()
	var b strings.Builder

	if m.auth.mode == modeSignup {
		b.WriteString(styles.AccentText.Render("Create an account"))
		b.WriteString("\n\n")
		b.WriteString(m.auth.name.View())
		b.WriteString("\n")
	} else {
		b.WriteString(styles.AccentText.Render("Sign in"))
		b.WriteString("\n\n")
	}
	b.WriteString(m.auth.email.View())
	b.WriteString("\n")
	b.WriteString(m.auth.password.View())
	b.WriteString("\n\n")

	if m.auth.busy {
		b.WriteString(styles.InfoText.Render("Signing in..."))
	} else if m.auth.errMsg != "" {
		b.WriteString(styles.DangerText.Render(m.auth.errMsg))
	} else {
		other := ternary(m.auth.mode == modeSignup, "sign in instead", "create an account")
		b.WriteString(styles.MutedText.Render("ctrl+s: " + other))
	}

	return styles.Panel.Render(b.String())
}

// renderHelp draws the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	commands := []struct{ key, desc string }{
		{"1-5", "Switch view (shop, cart, compare, wishlist, orders)"},
		{"tab", "Cycle views"},
		{"j/k", "Move selection"},
		{"a", "Add product to cart"},
		{"w", "Save product to wishlist"},
		{"m", "Add product to comparison (up to 3)"},
		{"o", "Checkout with M-Pesa"},
		{"L", "Log in or out"},
		{"T", "Cycle theme"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Render("duka keys"))
	b.WriteString("\n\n")
	for _, cmd := range commands {
		b.WriteString(styles.InfoText.Render(padRight(cmd.key, 6)))
		b.WriteString(styles.Text.Render(cmd.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("press any key to close"))

	return styles.Panel.Render(b.String())
}
