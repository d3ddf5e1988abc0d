// Command adminhash prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	adminhash 'my secret'
//	echo -n 'my secret' | adminhash
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joedev/portfolio-api/internal/logging"
	"github.com/joedev/portfolio-api/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	logging.Setup("INFO")

	secret, err := readSecret()
	if err != nil {
		logging.Fatal("read secret failed", "error", err)
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "usage: adminhash <secret>  (or pipe the secret on stdin)")
		os.Exit(1)
	}

	hash, err := auth.HashSecret(secret, bcrypt.DefaultCost)
	if err != nil {
		logging.Fatal("hash failed", "error", err)
	}
	fmt.Println(hash)
}

func readSecret() (string, error) {
	if len(os.Args) > 1 {
		return os.Args[1], nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
