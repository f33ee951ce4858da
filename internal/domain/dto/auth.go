package dto

import "slices"

// Claims is the identity carried by an admin bearer token.
type Claims struct {
	Subject string   `json:"sub"`
	Roles   []string `json:"roles,omitempty"`
}

// HasRole reports whether role is among the granted roles.
func (c *Claims) HasRole(role string) bool {
	return c != nil && slices.Contains(c.Roles, role)
}
