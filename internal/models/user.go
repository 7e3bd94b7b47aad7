package models

import (
	"encoding/json"
	"fmt"

	"storage-rental-api/internal/stores"
)

// DefaultTempPassword is used when a create-user payload carries no
// password and identity provisioning needs one.
const DefaultTempPassword = "Temp@1234"

// UserPayload wraps a user document. User records are schemaless beyond
// email/userid/password/timestamp: whatever else the caller sends is
// persisted verbatim, so the payload stays a map rather than a struct.
type UserPayload struct {
	Fields stores.Record
}

// ParseUserPayload decodes a request body into a UserPayload
func ParseUserPayload(body []byte) (*UserPayload, error) {
	var fields stores.Record
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if fields == nil {
		fields = stores.Record{}
	}
	return &UserPayload{Fields: fields}, nil
}

// Email returns the payload's email attribute
func (p *UserPayload) Email() (string, bool) {
	return p.stringField("email")
}

// UserID returns the payload's userid attribute
func (p *UserPayload) UserID() (string, bool) {
	return p.stringField("userid")
}

// Password returns the payload's password, falling back to the default
// temporary password
func (p *UserPayload) Password() string {
	if pw, ok := p.stringField("password"); ok {
		return pw
	}
	return DefaultTempPassword
}

// ValidateEmail checks that the payload carries a syntactically valid
// email address
func (p *UserPayload) ValidateEmail() error {
	email, ok := p.Email()
	if !ok {
		return fmt.Errorf("Missing required field: 'email'")
	}
	if err := validate.Var(email, "email"); err != nil {
		return fmt.Errorf("Invalid value for field 'email': not a valid email address")
	}
	return nil
}

// Stamp sets the server-assigned identity and timestamp fields,
// overriding any caller-supplied values, and returns the record to
// persist.
func (p *UserPayload) Stamp(userID, timestamp string) stores.Record {
	p.Fields["userid"] = userID
	p.Fields["timestamp"] = timestamp
	return p.Fields
}

func (p *UserPayload) stringField(name string) (string, bool) {
	v, ok := p.Fields[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
