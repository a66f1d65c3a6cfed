// Package auth holds the login, logout, whoami and passwd runners.
package auth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/diary/pkg/identity"
	"tableflip.dev/diary/pkg/printers"
	"tableflip.dev/diary/pkg/session"
)

type Login struct {
	// Email is prompted for when empty. The password is always prompted.
	Email string

	Session *session.Session
	In      io.Reader
	Out     io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not log in, no session")
	}
	out := writer(n.Out)
	email := n.Email
	if email == "" {
		in := n.In
		if in == nil {
			in = os.Stdin
		}
		var err error
		if email, err = readLine(bufio.NewReader(in), "Email: ", out); err != nil {
			return err
		}
	}
	password, err := getPassword("Password: ", out)
	if err != nil {
		return err
	}

	_, err = n.Session.SignIn(ctx, email, password)
	if note, ok := n.Session.Journal().Notifications().Current(); ok {
		pp := printers.PrettyPrint{Out: out}
		pp.Notification(note)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%d entries\n", n.Session.Journal().Len())
	return nil
}

type Logout struct {
	Session *session.Session
	Out     io.Writer
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not log out, no session")
	}
	if err := n.Session.SignOut(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer(n.Out), "Logged out.")
	return nil
}

type WhoAmI struct {
	JSON bool

	Session *session.Session
	Out     io.Writer
}

func (n *WhoAmI) Do(_ context.Context) error {
	if n.Session == nil {
		return errors.New("no session")
	}
	u, err := n.Session.RequireUser()
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, map[string]any{
			"uid":     u.UID,
			"email":   u.Email,
			"expires": u.Expires,
		})
	}
	b := color.New(color.Bold)
	f := color.New(color.Faint)
	_, _ = b.Fprintln(writer(n.Out), u.Email)
	_, _ = f.Fprintf(writer(n.Out), "%s\nsigned in until %s\n", u.UID, u.Expires.Local().Format("January 02, 2006 15:04"))
	return nil
}

// Passwd prints a bcrypt hash for the accounts section of .diary.yaml.
type Passwd struct {
	Email string
	Out   io.Writer
}

func (n *Passwd) Do(_ context.Context) error {
	out := writer(n.Out)
	password, err := getPassword("New password: ", out)
	if err != nil {
		return err
	}
	again, err := getPassword("Repeat password: ", out)
	if err != nil {
		return err
	}
	if password != again {
		return errors.New("passwords do not match")
	}
	hash, err := identity.HashPassword(password)
	if err != nil {
		return err
	}
	email := identity.NormalizeEmail(n.Email)
	if email == "" {
		email = "you@example.com"
	}
	_, _ = fmt.Fprintf(out, "accounts:\n  %s: %q\n", email, hash)
	return nil
}

func writer(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return color.Output
}
