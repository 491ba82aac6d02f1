package cli

import (
	"context" // Cancellation
	"errors"  // EOF detection
	"fmt"     // Output formatting
	"io"      // io.EOF
	"strings" // Command parsing

	"payment_tracker/internal/client/session" // Auth state and routes
)

const (
	authHelp = "Available commands: login, register, help, exit"
	appHelp  = "Available commands: dashboard, pay, scan <qr-json>, list, show <id>, profile, logout, help, exit"
)

// Run loads the session and reads commands until exit, end of input or
// cancellation of ctx. The session travels in ctx, where session.Expire
// finds it after a 401.
func (a *App) Run(ctx context.Context) error {
	ctx = session.NewContext(ctx, a.sess) // Reachable from the API client's 401 hook
	a.sess.Load(ctx)
	if a.sess.Authenticated() {
		a.dashboard(ctx)
	} else {
		fmt.Fprintln(a.out, "Welcome! Please log in or register.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil // Interrupted, not an error
		}
		line, err := a.readLine(fmt.Sprintf("paytrack %s > ", a.sess.Location()))
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out)
				return nil
			}
			return err
		}
		cmd, arg, _ := strings.Cut(line, " ")
		if cmd == "" {
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(a.out, "Bye!")
			return nil
		}
		a.dispatch(ctx, cmd, strings.TrimSpace(arg))
	}
}

// dispatch runs cmd if the current route group allows it
func (a *App) dispatch(ctx context.Context, cmd, arg string) {
	if session.Group(a.sess.Location()) != session.GroupApp {
		switch cmd {
		case "help":
			fmt.Fprintln(a.out, authHelp)
		case "login":
			a.login(ctx)
		case "register":
			a.register(ctx)
		default:
			fmt.Fprintf(a.out, "Unknown command: %s. Type help for a list.\n", cmd)
		}
		return
	}

	switch cmd {
	case "help":
		fmt.Fprintln(a.out, appHelp)
	case "dashboard", "home":
		a.dashboard(ctx)
	case "pay":
		a.pay(ctx, "", "")
	case "scan":
		a.scan(ctx, arg)
	case "list", "l":
		a.list(ctx)
	case "show":
		a.show(ctx, arg)
	case "profile":
		a.profile(ctx)
	case "logout":
		a.logout(ctx)
	default:
		fmt.Fprintf(a.out, "Unknown command: %s. Type help for a list.\n", cmd)
	}
}
