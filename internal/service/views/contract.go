package views

import (
	"agritrack/internal/entities"
	"agritrack/internal/service/fleet"
	"agritrack/internal/service/incident"
	"agritrack/internal/service/trip"
)

// Gateway - удаленный сервис, привязанный к одной сессии.
type Gateway interface {
	trip.Gateway
	incident.Gateway
	fleet.Gateway
}

// GatewayFunc выдает клиент удаленного сервиса с credential конкретной сессии.
type GatewayFunc func(session entities.Session) Gateway
