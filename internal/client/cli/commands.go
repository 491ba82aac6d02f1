package cli

import (
	"context"        // Request scoping
	"errors"         // Error classification
	"fmt"            // Output formatting
	"strconv"        // Payment ID arguments
	"text/tabwriter" // Transaction tables

	"payment_tracker/internal/client/api"     // Server client
	"payment_tracker/internal/client/form"    // Local input checks
	"payment_tracker/internal/client/qr"      // Scanned payloads
	"payment_tracker/internal/client/session" // Auth state and routes
	"payment_tracker/internal/domain"         // Payment types and messages

	"github.com/sirupsen/logrus" // Structured logging
)

// Fixed values for payments made from the client.
const (
	payStatus = string(domain.StatusSuccess)
	payMethod = "UPI"
)

const (
	genericFailure = "Something went wrong. Please try again."
	networkFailure = "Could not reach the server. Please try again."
	logoutFailure  = "Could not remove the saved login. You are still signed in."
	timeLayout     = "02 Jan 2006, 15:04"
	invalidQR      = "Invalid QR code. It is missing the receiver or amount."
	unreadableQR   = "Could not read the QR code data."
)

// login stores a token and opens the dashboard
func (a *App) login(ctx context.Context) {
	a.sess.Navigate(session.LoginRoute)
	username, password, ok := a.credentials()
	if !ok {
		return
	}
	if err := a.svc.Login(ctx, username, password); err != nil {
		a.alert(err)
		return
	}
	a.sess.SetAuthenticated(true) // Token already saved by the client
	fmt.Fprintf(a.out, "Logged in as %s.\n", username)
	a.dashboard(ctx)
}

// register creates an account and returns to the login screen
func (a *App) register(ctx context.Context) {
	a.sess.Navigate(session.RegisterRoute)
	username, password, ok := a.credentials()
	if !ok {
		a.sess.Navigate(session.LoginRoute) // Back out of the form
		return
	}
	acc, err := a.svc.Register(ctx, username, password)
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Account %s created. Please log in.\n", acc.Username)
	a.sess.Navigate(session.LoginRoute)
}

func (a *App) credentials() (string, string, bool) {
	username, err := a.readLine("Email: ")
	if err != nil {
		return "", "", false
	}
	password, err := a.password("Password: ")
	if err != nil {
		return "", "", false
	}
	if err := form.ValidateCredentials(username, password); err != nil {
		a.alert(err)
		return "", "", false
	}
	return username, password, true
}

// dashboard shows the stats and the latest transactions
func (a *App) dashboard(ctx context.Context) {
	a.sess.Navigate(session.HomeRoute)
	stats, err := a.svc.Stats(ctx)
	if err != nil {
		a.alert(err)
		return
	}
	payments, err := a.svc.ListPayments(ctx)
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Total revenue: %s\n", money(stats.TotalRevenue.StringFixed(2)))
	fmt.Fprintf(a.out, "Transactions:  %d\n", stats.TotalCount)
	fmt.Fprintf(a.out, "Failed:        %d\n", stats.FailedCount)
	if len(payments) == 0 {
		fmt.Fprintln(a.out, "No recent transactions.")
		return
	}
	fmt.Fprintln(a.out, "Recent transactions:")
	if len(payments) > 2 {
		payments = payments[:2] // Two most recent only
	}
	a.table(payments)
}

// pay collects and sends a payment. receiver and amount pre-fill the form.
func (a *App) pay(ctx context.Context, receiver, amount string) {
	a.sess.Navigate(session.AddPaymentRoute)
	receiver, err := a.readDefault("Receiver", receiver)
	if err != nil {
		return
	}
	amount, err = a.readDefault("Amount", amount)
	if err != nil {
		return
	}
	value, err := form.ValidatePayment(receiver, amount)
	if err != nil {
		a.alert(err)
		return
	}
	p, err := a.svc.CreatePayment(ctx, api.PaymentInput{
		Amount:   value,
		Receiver: receiver,
		Status:   payStatus,
		Method:   payMethod,
	})
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Sent %s to %s (#%d).\n", money(p.Amount.StringFixed(2)), p.Receiver, p.ID)
	a.sess.Navigate(session.HomeRoute)
}

// scan parses QR data and opens a pre-filled payment form
func (a *App) scan(ctx context.Context, data string) {
	a.sess.Navigate(session.ScannerRoute)
	payload, err := qr.Parse(data)
	if err != nil {
		logrus.WithError(err).Debug("Rejected QR payload")
		if errors.Is(err, qr.ErrInvalidQR) {
			fmt.Fprintln(a.out, "Error: "+invalidQR)
		} else {
			fmt.Fprintln(a.out, "Error: "+unreadableQR)
		}
		return
	}
	a.pay(ctx, payload.Receiver, payload.Amount.String())
}

func (a *App) list(ctx context.Context) {
	a.sess.Navigate(session.TransactionsRoute)
	payments, err := a.svc.ListPayments(ctx)
	if err != nil {
		a.alert(err)
		return
	}
	if len(payments) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return
	}
	a.table(payments)
}

func (a *App) show(ctx context.Context, arg string) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 { // IDs start at 1
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}
	a.sess.Navigate(session.TransactionRoute(uint(id)))
	p, err := a.svc.GetPayment(ctx, uint(id))
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Payment #%d\n", p.ID)
	fmt.Fprintf(a.out, "  Receiver: %s\n", p.Receiver)
	fmt.Fprintf(a.out, "  Amount:   %s\n", money(p.Amount.StringFixed(2)))
	fmt.Fprintf(a.out, "  Status:   %s\n", p.Status)
	fmt.Fprintf(a.out, "  Method:   %s\n", p.Method)
	fmt.Fprintf(a.out, "  Date:     %s\n", p.CreatedAt.Local().Format(timeLayout))
}

func (a *App) profile(ctx context.Context) {
	a.sess.Navigate(session.ProfileRoute)
	acc, err := a.svc.Profile(ctx)
	if err != nil {
		a.alert(err)
		return
	}
	fmt.Fprintf(a.out, "Signed in as %s (id %d, role %s)\n", acc.Username, acc.ID, acc.Role)
}

// logout leaves the session signed in when the token cannot be deleted
func (a *App) logout(ctx context.Context) {
	if err := a.sess.SignOut(ctx); err != nil {
		logrus.WithError(err).Error("Error deleting token")
		fmt.Fprintln(a.out, "Error: "+logoutFailure)
		return
	}
	fmt.Fprintln(a.out, "Logged out.")
}

func (a *App) table(payments []domain.Payment) {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tRECEIVER\tAMOUNT\tSTATUS\tMETHOD\tDATE")
	for _, p := range payments {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Receiver, money(p.Amount.StringFixed(2)), p.Status, p.Method, p.CreatedAt.Local().Format(timeLayout))
	}
	_ = w.Flush()
}

// alert prints err as a one-line error. Server messages are shown as sent.
func (a *App) alert(err error) {
	msg := domain.Message(err, genericFailure)
	if errors.Is(err, api.ErrNetwork) {
		msg = networkFailure // Transport details stay in the log
	}
	logrus.WithError(err).Debug("Command failed")
	fmt.Fprintln(a.out, "Error: "+msg)
}

func money(amount string) string { return "₹" + amount }
