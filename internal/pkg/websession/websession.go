package websession

import (
	"errors"
	"fmt"
	"net/http"

	"agritrack/internal/entities"
	"agritrack/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const cookieName = "agritrack_session"

const (
	keyID         = "id"
	keyToken      = "token"
	keyRole       = "role"
	keySubject    = "subject"
	keyShipmentID = "shipment_id"
	keyCarrierID  = "carrier_id"
	keyOriginLat  = "origin_lat"
	keyOriginLon  = "origin_lon"
)

var ErrNoSession = errors.New("no web session")

// Store хранит в подписанной cookie credential, роль, id сессии и активную привязку водителя.
type Store struct {
	store *sessions.CookieStore
}

func New(cfg *config.Session) *Store {
	cs := sessions.NewCookieStore([]byte(cfg.Secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{store: cs}
}

// Credential возвращает bearer credential или пустую строку.
func (s *Store) Credential(r *http.Request) string {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[keyToken].(string)
	return token
}

// Load читает сессию и привязку. Привязка nil, если рейса нет.
func (s *Store) Load(r *http.Request) (entities.Session, *entities.PickupBinding, error) {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return entities.Session{}, nil, fmt.Errorf("decode session cookie: %w", err)
	}

	token, _ := sess.Values[keyToken].(string)
	if token == "" {
		return entities.Session{}, nil, ErrNoSession
	}

	id, _ := sess.Values[keyID].(string)
	roleName, _ := sess.Values[keyRole].(string)
	subject, _ := sess.Values[keySubject].(string)
	role, _ := entities.ParseRole(roleName)

	session := entities.Session{
		ID:      id,
		Role:    role,
		Token:   token,
		Subject: subject,
	}

	shipmentID, _ := sess.Values[keyShipmentID].(string)
	carrierID, _ := sess.Values[keyCarrierID].(string)
	lat, _ := sess.Values[keyOriginLat].(float64)
	lon, _ := sess.Values[keyOriginLon].(float64)

	binding := &entities.PickupBinding{
		ShipmentID: shipmentID,
		CarrierID:  carrierID,
		Origin:     entities.Coordinates{Lat: lat, Lon: lon},
	}
	if !binding.Valid() {
		binding = nil
	}
	return session, binding, nil
}

// Start открывает новую веб-сессию после логина. Старая привязка не переносится.
func (s *Store) Start(w http.ResponseWriter, r *http.Request, session entities.Session) (entities.Session, error) {
	sess, _ := s.store.Get(r, cookieName)
	for k := range sess.Values {
		delete(sess.Values, k)
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	sess.Values[keyID] = session.ID
	sess.Values[keyToken] = session.Token
	sess.Values[keyRole] = session.Role.String()
	sess.Values[keySubject] = session.Subject

	if err := sess.Save(r, w); err != nil {
		return entities.Session{}, fmt.Errorf("save session cookie: %w", err)
	}
	return session, nil
}

// SaveBinding переносит привязку в cookie. nil удаляет ее.
func (s *Store) SaveBinding(w http.ResponseWriter, r *http.Request, binding *entities.PickupBinding) error {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return fmt.Errorf("decode session cookie: %w", err)
	}

	if binding == nil || !binding.Valid() {
		delete(sess.Values, keyShipmentID)
		delete(sess.Values, keyCarrierID)
		delete(sess.Values, keyOriginLat)
		delete(sess.Values, keyOriginLon)
	} else {
		sess.Values[keyShipmentID] = binding.ShipmentID
		sess.Values[keyCarrierID] = binding.CarrierID
		sess.Values[keyOriginLat] = binding.Origin.Lat
		sess.Values[keyOriginLon] = binding.Origin.Lon
	}

	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session cookie: %w", err)
	}
	return nil
}

// Clear удаляет cookie и возвращает id закрытой сессии.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) (string, error) {
	sess, _ := s.store.Get(r, cookieName)
	id, _ := sess.Values[keyID].(string)

	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return id, fmt.Errorf("clear session cookie: %w", err)
	}
	return id, nil
}
