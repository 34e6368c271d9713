package cli

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/pagination"
)

// pager keeps the client-side page state and a dots paginator in step. The
// pagination.State is authoritative; the paginator handles n/p and renders.
type pager struct {
	st   pagination.State
	dots paginator.Model
}

func newPager(size int) pager {
	dots := paginator.New(paginator.WithPerPage(max(size, 1)))
	dots.Type = paginator.Dots
	dots.ActiveDot = formatter.StyleHeader.Render("•")
	dots.InactiveDot = formatter.Dim("•")
	dots.KeyMap = paginator.KeyMap{
		PrevPage: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
	}
	p := pager{st: pagination.New(0, size), dots: dots}
	p.sync()
	return p
}

// SetTotal updates the item count, clamping the current page.
func (p *pager) SetTotal(n int) {
	p.st.SetTotal(n)
	p.sync()
}

// Reset sets a new item count and returns to page 1.
func (p *pager) Reset(n int) {
	p.st.SetTotal(n)
	p.st.SetPage(1)
	p.sync()
}

// Update applies a page key. It reports whether the page changed.
func (p *pager) Update(msg tea.KeyMsg) bool {
	before := p.st.Page()
	p.dots, _ = p.dots.Update(msg)
	p.st.SetPage(p.dots.Page + 1)
	p.sync()
	return p.st.Page() != before
}

func (p *pager) sync() {
	p.dots.TotalPages = p.st.TotalPages()
	p.dots.Page = p.st.Page() - 1
}

func (p pager) Page() int { return p.st.Page() }

func (p pager) State() pagination.State { return p.st }

func (p pager) View() string {
	if p.st.TotalPages() <= 1 {
		return formatter.PageLabel(p.st)
	}
	return p.dots.View() + "  " + formatter.PageLabel(p.st)
}

func (p pager) bindings() []key.Binding {
	return []key.Binding{p.dots.KeyMap.NextPage, p.dots.KeyMap.PrevPage}
}

// pageItems returns the slice of items on the pager's current page.
func pageItems[T any](p pager, items []T) []T {
	return pagination.Paginate(items, p.st.Page(), p.st.PageSize())
}
