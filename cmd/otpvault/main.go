// Command otpvault keeps TOTP accounts and prints their current codes.
//
// Usage:
//
//	otpvault [-env FILE] <command> [arguments]
//
// Commands:
//
//	list                         accounts with their current codes
//	add NAME SECRET [NOTE]       add an account from a Base32 secret
//	new NAME [NOTE]              add an account with a generated secret
//	import FILE|URI              import a QR image, a text file or a URI
//	code NAME                    print the current code
//	watch NAME                   refresh the code every second
//	note NAME TEXT               replace the note of an account
//	delete NAME                  delete an account
//	export [-o FILE] [NAME]      write QR codes of one or all accounts
//	serve                        run the HTTP API
//
// The store backend is chosen by STORE_DRIVER (file, memory, redis, postgres,
// mongo, s3); see the package configs for the other variables.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "otpvault:", err)
		}
		stop()
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: otpvault [-env FILE] <command> [arguments]

commands:
  list                         accounts with their current codes
  add NAME SECRET [NOTE]       add an account from a Base32 secret
  new NAME [NOTE]              add an account with a generated secret
  import FILE|URI              import a QR image, a text file or a URI
  code NAME                    print the current code
  watch NAME                   refresh the code every second
  note NAME TEXT               replace the note of an account
  delete NAME                  delete an account
  export [-o FILE] [NAME]      write QR codes of one or all accounts
  serve                        run the HTTP API
`)
}
