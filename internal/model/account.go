package model

import (
	"strings"
	"time"
)

// Nickname identifies a user across live sessions and registered accounts.
// Nickname comparison is case-sensitive everywhere.
type Nickname string

// Validate fails with ErrInvalidNick when the nickname cannot survive the
// wire protocol. Nicknames are single tokens; whitespace would split them
// during command tokenization.
func (n Nickname) Validate() error {
	if n == "" || strings.ContainsAny(string(n), " \t") {
		return ErrInvalidNick
	}
	return nil
}

// Account is a registered, password-protected identity independent of any
// live connection. Accounts are immutable once created; there is no password
// change or deletion operation.
type Account struct {
	Nickname  Nickname  `json:"nickname"`
	Salt      []byte    `json:"salt"`
	Digest    []byte    `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
}
