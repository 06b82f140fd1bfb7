package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aarogyavani/companion/internal/store"
	"github.com/aarogyavani/companion/pkg/model"
)

// MaxEmergencyContacts caps the SOS contact list. The first entry is the
// primary contact dialed by the SOS action.
const MaxEmergencyContacts = 3

// ContactService manages the emergency contact list
type ContactService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(st *store.Store, logger *zap.Logger) *ContactService {
	return &ContactService{
		store:  st,
		logger: logger,
	}
}

// Add appends a contact. Returns ErrCapacityExceeded once the list already
// holds MaxEmergencyContacts entries; the collection is left untouched.
func (s *ContactService) Add(name, phone, relation string) (*model.EmergencyContact, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return nil, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: contact phone is required", ErrValidation)
	}

	contacts := s.List()
	if len(contacts) >= MaxEmergencyContacts {
		s.logger.Warn("emergency contact list is full",
			zap.Int("max", MaxEmergencyContacts),
		)
		return nil, fmt.Errorf("%w: maximum %d emergency contacts allowed", ErrCapacityExceeded, MaxEmergencyContacts)
	}

	contact := model.EmergencyContact{
		ID:    uuid.New().String(),
		Name:  name,
		Phone: phone,
	}
	if relation = strings.TrimSpace(relation); relation != "" {
		contact.Relation = &relation
	}

	contacts = append(contacts, contact)
	store.Save(s.store, store.KeyContacts, contacts)

	s.logger.Info("emergency contact added",
		zap.String("contact_id", contact.ID),
		zap.String("name", contact.Name),
	)

	return &contact, nil
}

// Delete removes the contact by id. No-op if absent. Remaining contacts keep
// their insertion order, so the primary may change.
func (s *ContactService) Delete(id string) {
	contacts := s.List()
	kept := contacts[:0]
	for _, c := range contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(contacts) {
		return
	}
	store.Save(s.store, store.KeyContacts, kept)

	s.logger.Info("emergency contact deleted", zap.String("contact_id", id))
}

// List returns all contacts in insertion order.
func (s *ContactService) List() []model.EmergencyContact {
	return store.Load(s.store, store.KeyContacts, []model.EmergencyContact{})
}

// Primary returns the contact dialed by the SOS action, or nil if the list
// is empty.
func (s *ContactService) Primary() *model.EmergencyContact {
	contacts := s.List()
	if len(contacts) == 0 {
		return nil
	}
	return &contacts[0]
}

// ShareText formats the contact list for the clipboard or a share sheet.
func (s *ContactService) ShareText() string {
	var lines []string
	for _, c := range s.List() {
		line := c.Name
		if c.Relation != nil {
			line += fmt.Sprintf(" (%s)", *c.Relation)
		}
		line += ": " + c.Phone
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
