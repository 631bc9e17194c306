// Package bootstrap turns a successful auth result (native or federated)
// into established client session state.
//
// Contract:
//   - Establish persists the full session atomically, then publishes exactly
//     one AuthChanged event, then navigates home after a fixed delay.
//   - The event fires only after the session is on disk; a failed save
//     publishes nothing and leaves prior state untouched.
//   - Establishing over an existing session overwrites it wholesale.
package bootstrap

import (
	"time"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/client/session"
)

// Navigator performs a client-side route change.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

const homePath = "/"

// navigateDelay keeps the success message visible before leaving the page.
const navigateDelay = 1500 * time.Millisecond

type Bootstrapper struct {
	Store session.Store
	Bus   *session.Bus
	Nav   Navigator
	Delay time.Duration // zero means navigateDelay
}

func New(store session.Store, bus *session.Bus, nav Navigator) *Bootstrapper {
	return &Bootstrapper{Store: store, Bus: bus, Nav: nav}
}

// Establish persists the session for token/email and broadcasts the change.
func (b *Bootstrapper) Establish(token, email string) error {
	if err := b.Store.Save(session.New(token, email)); err != nil {
		return err
	}
	if b.Bus != nil {
		b.Bus.Publish(session.AuthChanged{Email: email})
	}
	if b.Nav != nil {
		delay := b.Delay
		if delay <= 0 {
			delay = navigateDelay
		}
		time.AfterFunc(delay, func() { b.Nav.Navigate(homePath) })
	}
	return nil
}

// Clear removes the session (logout) and broadcasts an empty identity.
func (b *Bootstrapper) Clear() error {
	if err := b.Store.Clear(); err != nil {
		return err
	}
	if b.Bus != nil {
		b.Bus.Publish(session.AuthChanged{})
	}
	return nil
}
