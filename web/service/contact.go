package service

import (
	_ "embed"
	"log"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed contacts.toml
var contactsTOML []byte

// Contact is a static directory entry for a club mentor. The directory is
// in-process configuration, not a stored entity; reviews reference entries
// by slug only.
type Contact struct {
	Slug      string   `toml:"slug"`
	Initials  string   `toml:"initials"`
	Name      string   `toml:"name"`
	Role      string   `toml:"role"`
	About     string   `toml:"about"`
	Telegram  string   `toml:"telegram"`
	Email     string   `toml:"email"`
	Photo     string   `toml:"photo"`
	Expertise []string `toml:"expertise"`
}

type contactsFile struct {
	Contacts []Contact `toml:"contacts"`
}

var (
	contactsOnce sync.Once
	contactsData []Contact
)

type ContactService struct{}

// GetContacts returns the directory in its configured order.
func (s *ContactService) GetContacts() []Contact {
	contactsOnce.Do(loadContacts)
	return contactsData
}

// GetContact returns the entry for a slug, or nil when it does not exist.
func (s *ContactService) GetContact(slug string) *Contact {
	for i, contact := range s.GetContacts() {
		if contact.Slug == slug {
			return &contactsData[i]
		}
	}
	return nil
}

func loadContacts() {
	var file contactsFile
	if err := toml.Unmarshal(contactsTOML, &file); err != nil {
		log.Fatalf("invalid embedded contacts.toml: %v", err)
	}
	contactsData = file.Contacts
}
