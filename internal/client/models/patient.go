// Package models defines the client-side DTOs exchanged with the CliniVault
// backend.
package models

// Patient is a person under care. Clinical notes never travel in the clear:
// the wire carries EncryptedNotes/NotesNonce, and Notes is populated only
// after client-side decryption with the user key.
type Patient struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`

	EncryptedNotes string `json:"encryptedNotes,omitempty"`
	NotesNonce     string `json:"notesNonce,omitempty"`

	Notes string `json:"-"`
}

// FullName renders the display name used in lists.
func (p Patient) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}
