package shipment

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type createShipmentRequest struct {
	OriginLat float64 `json:"origin_lat" validate:"latitude"`
	OriginLon float64 `json:"origin_lon" validate:"longitude"`
	DestLat   float64 `json:"dest_lat" validate:"latitude"`
	DestLon   float64 `json:"dest_lon" validate:"longitude"`
}

type createShipmentResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	PickupCode string `json:"pickup_code"`
}

type pickupRequest struct {
	PickupCode string `json:"pickup_code"`
}

type pickupResponse struct {
	Success    bool    `json:"success"`
	ShipmentID string  `json:"shipment_id"`
	TruckID    string  `json:"truck_id"`
	OriginLat  float64 `json:"origin_lat"`
	OriginLon  float64 `json:"origin_lon"`
}

type incidentRequest struct {
	TruckID      string  `json:"truck_id" validate:"required"`
	ShipmentID   string  `json:"shipment_id" validate:"required"`
	Latitude     float64 `json:"latitude" validate:"latitude"`
	Longitude    float64 `json:"longitude" validate:"longitude"`
	IncidentType string  `json:"incident_type" validate:"required"`
	Description  string  `json:"description"`
	Severity     int     `json:"severity" validate:"min=1,max=5"`
}

type activeShipment struct {
	ID         string   `json:"id"`
	TruckID    string   `json:"truck_id"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
	DestLat    float64  `json:"dest_lat"`
	DestLon    float64  `json:"dest_lon"`
	Status     string   `json:"status"`
	PickupCode string   `json:"pickup_code"`
	Speed      float64  `json:"speed"`
}

type summaryResponse struct {
	TotalActiveTrucks   int     `json:"total_active_trucks"`
	TotalCompletedToday int     `json:"total_completed_today"`
	AlertsCount         int     `json:"alerts_count"`
	AvgSpeed            float64 `json:"avg_speed"`
	TimeRange           string  `json:"time_range"`
	Error               bool    `json:"error"`
}

type verifyRequest struct {
	ShipmentID string  `json:"shipment_id" validate:"required"`
	Lat        float64 `json:"lat" validate:"latitude"`
	Lon        float64 `json:"lon" validate:"longitude"`
}

type completeRequest struct {
	ShipmentID string `json:"shipment_id"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
