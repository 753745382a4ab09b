package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"lawyer_landing_go/services"

	"golang.org/x/term"
)

func main() {
	fmt.Fprintln(os.Stderr, "=== Admin password hash ===")
	fmt.Fprintln(os.Stderr)

	in := bufio.NewReader(os.Stdin)
	password, err := readPassword(in, "Password: ")
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	confirm, err := readPassword(in, "Confirm password: ")
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}

	hash, err := hashConfirmed(password, confirm)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "✓ Add this line to your .env:")
	fmt.Printf("ADMIN_PASSWORD_HASH=%s\n", hash)
}

// readPassword prompts without echo on a terminal and reads a line otherwise
func readPassword(in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr) // New line after password input
		return string(b), err
	}
	return readLine(in)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// hashConfirmed checks the policy and that both entries match before hashing
func hashConfirmed(password, confirm string) (string, error) {
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	if err := services.ValidatePassword(password); err != nil {
		return "", err
	}
	return services.HashPassword(password)
}
