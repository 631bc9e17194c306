// sentilog is a small CLI front-end for the auth API: signup, login, whoami,
// logout. It drives the same session machinery the web client uses.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/client/api"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/client/bootstrap"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/client/session"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	serverURL := os.Getenv("SENTILOG_API_URL")
	if serverURL == "" {
		serverURL = "http://localhost:5000"
	}

	store, err := defaultStore()
	if err != nil {
		fatal(err)
	}
	bus := session.NewBus()
	bus.Subscribe(func(ev session.AuthChanged) {
		if ev.Email != "" {
			fmt.Printf("signed in as %s\n", ev.Email)
		} else {
			fmt.Println("signed out")
		}
	})
	boot := bootstrap.New(store, bus, nil)
	client := api.New(serverURL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "signup":
		err = runSignup(ctx, client, boot, os.Args[2:])
	case "login":
		err = runLogin(ctx, client, boot, os.Args[2:])
	case "whoami":
		err = runWhoami(ctx, client, store)
	case "logout":
		err = boot.Clear()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func runSignup(ctx context.Context, client *api.Client, boot *bootstrap.Bootstrapper, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	firstname := fs.String("firstname", "", "first name")
	lastname := fs.String("lastname", "", "last name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	token, err := client.Signup(ctx, api.SignupRequest{
		Firstname: *firstname,
		Lastname:  *lastname,
		Email:     *email,
		Password:  *password,
	})
	if err != nil {
		return friendly(err)
	}
	return boot.Establish(token, *email)
}

func runLogin(ctx context.Context, client *api.Client, boot *bootstrap.Bootstrapper, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	_ = fs.Parse(args)

	token, err := client.Login(ctx, *email, *password)
	if err != nil {
		return friendly(err)
	}
	return boot.Establish(token, *email)
}

func runWhoami(ctx context.Context, client *api.Client, store session.Store) error {
	s, ok, err := store.Load()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("not signed in")
	}
	id, err := client.Me(ctx, s.Token)
	if err != nil {
		return friendly(err)
	}
	fmt.Printf("%s %s <%s>\n", id.Firstname, id.Lastname, id.Email)
	return nil
}

// friendly maps transport failures to the generic message shown to users.
func friendly(err error) error {
	if errors.Is(err, api.ErrNetwork) {
		return errors.New("network error")
	}
	return err
}

func defaultStore() (*session.FileStore, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return session.NewFileStore(filepath.Join(dir, "sentilog", "session.json")), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sentilog <signup|login|whoami|logout> [flags]")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
