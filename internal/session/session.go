// Package session holds the app-wide UI context (who is logged in, which page
// is open) and the single controller allowed to change it.
package session

import (
	"errors"
	"fmt"
	"strings"
)

type Page string

const (
	PageHome     Page = "home"
	PageSearch   Page = "search"
	PageServices Page = "services"
	PageProfile  Page = "profile"
)

// Pages lists the drawer entries in display order.
var Pages = []Page{PageHome, PageSearch, PageServices, PageProfile}

func (p Page) Title() string {
	switch p {
	case PageHome:
		return "Главная"
	case PageSearch:
		return "Аренда"
	case PageServices:
		return "Услуги"
	case PageProfile:
		return "Профиль"
	default:
		return string(p)
	}
}

func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Pages {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

var ErrEmptyUser = errors.New("user name is required")

type User struct {
	Name string `json:"name"`
}

// Context is a read-only snapshot of the app state shared by every view.
type Context struct {
	LoggedIn    bool  `json:"loggedIn"`
	CurrentPage Page  `json:"currentPage"`
	CurrentUser *User `json:"currentUser,omitempty"`
}

func (c Context) UserName() string {
	if c.CurrentUser == nil {
		return ""
	}
	return c.CurrentUser.Name
}

// Controller is the only writer of the session context. Views receive
// snapshots and ask the controller for changes.
type Controller struct {
	ctx       Context
	observers []func(Context)
}

func NewController() *Controller {
	return &Controller{ctx: Context{CurrentPage: PageHome}}
}

// Restore rebuilds the context from persisted flags. Invalid values fall back to defaults.
func (c *Controller) Restore(user string, page string) {
	user = strings.TrimSpace(user)
	if user != "" {
		c.ctx.LoggedIn = true
		c.ctx.CurrentUser = &User{Name: user}
	}
	if p, err := ParsePage(page); err == nil {
		c.ctx.CurrentPage = p
	}
	if c.ctx.CurrentPage == PageProfile && !c.ctx.LoggedIn {
		c.ctx.CurrentPage = PageHome
	}
}

// Snapshot returns a copy that later changes do not affect.
func (c *Controller) Snapshot() Context {
	out := c.ctx
	if c.ctx.CurrentUser != nil {
		u := *c.ctx.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

func (c *Controller) OnChange(fn func(Context)) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// Navigate switches pages. The profile page needs a logged in user; without
// one the controller lands on home instead.
func (c *Controller) Navigate(p Page) Context {
	if p == PageProfile && !c.ctx.LoggedIn {
		p = PageHome
	}
	if p == c.ctx.CurrentPage {
		return c.Snapshot()
	}
	c.ctx.CurrentPage = p
	return c.notify()
}

func (c *Controller) Login(name string) (Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c.Snapshot(), ErrEmptyUser
	}
	c.ctx.LoggedIn = true
	c.ctx.CurrentUser = &User{Name: name}
	return c.notify(), nil
}

func (c *Controller) Logout() Context {
	if !c.ctx.LoggedIn {
		return c.Snapshot()
	}
	c.ctx.LoggedIn = false
	c.ctx.CurrentUser = nil
	if c.ctx.CurrentPage == PageProfile {
		c.ctx.CurrentPage = PageHome
	}
	return c.notify()
}

func (c *Controller) notify() Context {
	snap := c.Snapshot()
	for _, fn := range c.observers {
		fn(c.Snapshot())
	}
	return snap
}
