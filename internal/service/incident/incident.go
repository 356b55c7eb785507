package incident

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"agritrack/internal/entities"
	"agritrack/pkg/logger"

	"github.com/google/uuid"
)

var severity = map[entities.IncidentType]int{
	entities.IncidentPoliceCheckpoint: 1,
	entities.IncidentBreakdown:        2,
	entities.IncidentAccident:         3,
	entities.IncidentTraffic:          1,
	entities.IncidentBadRoad:          1,
}

// Severity возвращает 0 для типа вне набора.
func Severity(t entities.IncidentType) int {
	return severity[t]
}

// Reporter ведет список инцидентов водителя.
// Запись появляется сразу как PENDING и затем либо подтверждается, либо удаляется.
type Reporter struct {
	mu        sync.Mutex
	gateway   Gateway
	locator   Locator
	trip      Trip
	log       handlerLogger
	incidents []entities.Incident

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	now    func() time.Time
}

func New(gateway Gateway, locator Locator, trip Trip, log handlerLogger) *Reporter {
	ctx, cancel := context.WithCancel(context.Background())

	return &Reporter{
		gateway: gateway,
		locator: locator,
		trip:    trip,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		now:     time.Now,
	}
}

// Report синхронно добавляет PENDING запись и запускает отправку.
// location - координаты устройства водителя; без них берется позиция грузовика из парка.
// Канал получает ровно один итог и закрывается.
func (r *Reporter) Report(
	incidentType entities.IncidentType,
	description string,
	location *entities.Coordinates,
) (string, <-chan error, error) {
	if r.ctx.Err() != nil {
		return "", nil, ErrReporterClosed
	}

	if _, ok := severity[incidentType]; !ok {
		return "", nil, entities.ValidationError(fmt.Sprintf("Unknown incident type %q", incidentType))
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = "Reported " + incidentType.String()
	}

	binding, ok := r.trip.Binding()
	if !ok {
		return "", nil, ErrNoActiveTrip
	}

	record := entities.Incident{
		ID:          uuid.NewString(),
		ShipmentID:  binding.ShipmentID,
		CarrierID:   binding.CarrierID,
		Type:        incidentType,
		Description: description,
		Severity:    Severity(incidentType),
		Status:      entities.IncidentPending,
		ReportedAt:  r.now(),
	}

	r.mu.Lock()
	r.incidents = append([]entities.Incident{record}, r.incidents...)
	r.mu.Unlock()

	done := make(chan error, 1)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer close(done)
		done <- r.submit(record, location)
	}()

	return record.ID, done, nil
}

func (r *Reporter) submit(record entities.Incident, device *entities.Coordinates) error {
	log := r.log.With(
		logger.NewField("incident_id", record.ID),
		logger.NewField("incident_type", record.Type.String()),
		logger.NewField("shipment_id", record.ShipmentID),
	)

	location, err := r.locate(record.CarrierID, device)
	if err != nil {
		r.revert(record.ID)
		if ctxErr := r.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Warn("incident location unavailable", logger.NewField("error", err))
		return entities.LocationUnavailableError(err)
	}

	err = r.gateway.ReportIncident(r.ctx, entities.IncidentReport{
		ShipmentID:  record.ShipmentID,
		CarrierID:   record.CarrierID,
		Location:    location,
		Type:        record.Type,
		Description: record.Description,
		Severity:    record.Severity,
	})
	if err != nil {
		r.revert(record.ID)
		log.Warn("incident report failed", logger.NewField("error", err))
		return err
	}

	if !r.confirm(record.ID, location) {
		return ErrReporterClosed
	}
	log.Info("incident confirmed")
	return nil
}

func (r *Reporter) locate(carrierID string, device *entities.Coordinates) (entities.Coordinates, error) {
	if device != nil {
		return *device, nil
	}
	return r.locator.Locate(r.ctx, carrierID)
}

func (r *Reporter) confirm(id string, location entities.Coordinates) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.incidents {
		if r.incidents[i].ID == id {
			r.incidents[i].Status = entities.IncidentConfirmed
			r.incidents[i].Location = &location
			return true
		}
	}
	return false
}

func (r *Reporter) revert(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.incidents {
		if r.incidents[i].ID == id {
			r.incidents = append(r.incidents[:i], r.incidents[i+1:]...)
			return
		}
	}
}

// List возвращает копию списка, самые свежие записи первыми.
func (r *Reporter) List() []entities.Incident {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]entities.Incident, len(r.incidents))
	copy(out, r.incidents)
	for i := range out {
		if out[i].Location != nil {
			loc := *out[i].Location
			out[i].Location = &loc
		}
	}
	return out
}

// Close отменяет незавершенные отправки и ждет их откат.
func (r *Reporter) Close() {
	r.cancel()
	r.wg.Wait()
}
