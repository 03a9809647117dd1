package service

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// CustomerIdentity is one entry of the customer directory file
type CustomerIdentity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CustomerDirectory maps known Shopify customer IDs to display names and
// emails. Loaded once at startup and read-only afterwards; deployments ship
// their own directory file instead of baking identity data into the binary.
type CustomerDirectory struct {
	byID map[int64]CustomerIdentity
}

// NewCustomerDirectory builds a directory from an in-memory map
func NewCustomerDirectory(entries map[int64]CustomerIdentity) *CustomerDirectory {
	if entries == nil {
		entries = make(map[int64]CustomerIdentity)
	}
	return &CustomerDirectory{byID: entries}
}

// LoadCustomerDirectory reads a JSON file of the form
// {"7395558785082": {"name": "Acme", "email": "ops@acme.com"}, ...}
func LoadCustomerDirectory(path string) (*CustomerDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]CustomerIdentity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse customer directory %s: %w", path, err)
	}
	entries := make(map[int64]CustomerIdentity, len(raw))
	for idStr, identity := range raw {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("customer directory %s: invalid customer ID %q", path, idStr)
		}
		entries[id] = identity
	}
	return NewCustomerDirectory(entries), nil
}

// Lookup returns the identity for a customer ID, if known
func (d *CustomerDirectory) Lookup(id int64) (CustomerIdentity, bool) {
	identity, ok := d.byID[id]
	return identity, ok
}

// Len returns the number of known customers
func (d *CustomerDirectory) Len() int {
	return len(d.byID)
}
