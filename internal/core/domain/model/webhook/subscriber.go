package webhook

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

var ErrSubscriberIsNotConstructed = errors.New("Subscriber must be created via NewSubscriber constructor")

// Subscriber is a registered webhook endpoint. The core only reads subscriber
// records; creating, rotating secrets and deactivating them is administration's
// concern.
type Subscriber struct {
	id       kernel.UUID
	endpoint string
	secret   string
	active   bool

	isConstructed bool
}

// NewSubscriber creates a subscriber record with its shared signing secret.
func NewSubscriber(id kernel.UUID, endpoint, secret string, active bool) (*Subscriber, error) {
	s := &Subscriber{active: active, isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setEndpoint(endpoint),
		s.setSecret(secret),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Subscriber instance was properly constructed.
func (s *Subscriber) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubscriberIsNotConstructed
	}
	return nil
}

// ID returns the subscriber's unique identifier.
func (s *Subscriber) ID() kernel.UUID {
	return s.id
}

// Endpoint returns the subscriber's delivery URL.
func (s *Subscriber) Endpoint() string {
	return s.endpoint
}

// Secret returns the shared secret used to sign delivery payloads.
func (s *Subscriber) Secret() string {
	return s.secret
}

// IsActive reports whether new events should fan out to this subscriber.
func (s *Subscriber) IsActive() bool {
	return s.active
}

func (s *Subscriber) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Subscriber) setEndpoint(endpoint string) error {
	if endpoint == "" {
		return errs.NewValueIsRequiredError("endpoint")
	}
	s.endpoint = endpoint
	return nil
}

func (s *Subscriber) setSecret(secret string) error {
	if secret == "" {
		return errs.NewValueIsRequiredError("secret")
	}
	s.secret = secret
	return nil
}
