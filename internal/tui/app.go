package tui

import tea "github.com/charmbracelet/bubbletea"

// App is the top-level Bubble Tea model that routes between pages.
//
// Keyboard and mouse input only reaches the active page. Every other message
// (fetch results, timer expiries, window sizes) is delivered to all pages so
// work started on one page completes while another is shown.
type App struct {
	pages      map[string]Page
	order      []string
	activePage string
	width      int
	height     int
}

// NewApp creates a new App with the given pages. The first page is the default.
func NewApp(pages ...Page) *App {
	pageMap := make(map[string]Page, len(pages))
	order := make([]string, 0, len(pages))
	for _, p := range pages {
		if _, dup := pageMap[p.ID()]; dup {
			continue
		}
		pageMap[p.ID()] = p
		order = append(order, p.ID())
	}
	a := &App{
		pages: pageMap,
		order: order,
	}
	if len(order) > 0 {
		a.activePage = order[0]
	}
	return a
}

// ActivePage returns the ID of the page currently shown.
func (a *App) ActivePage() string {
	return a.activePage
}

func (a *App) Init() tea.Cmd {
	if p, ok := a.pages[a.activePage]; ok {
		return p.Init()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		p, ok := a.pages[a.activePage]
		if !ok {
			return a, nil
		}
		cmd, nav := p.Update(msg)
		return a, tea.Batch(cmd, a.navigate(nav))
	}

	var cmds []tea.Cmd
	for _, id := range a.order {
		cmd, nav := a.pages[id].Update(msg)
		cmds = append(cmds, cmd)
		if id == a.activePage {
			cmds = append(cmds, a.navigate(nav))
		}
	}
	return a, tea.Batch(cmds...)
}

// navigate switches to the requested page and returns its Init command.
func (a *App) navigate(nav *PageNav) tea.Cmd {
	if nav == nil || nav.PageID == a.activePage {
		return nil
	}
	p, exists := a.pages[nav.PageID]
	if !exists {
		return nil
	}
	a.activePage = nav.PageID
	return p.Init()
}

func (a *App) View() string {
	if p, ok := a.pages[a.activePage]; ok {
		return p.View(a.width, a.height)
	}
	return "No active page"
}
