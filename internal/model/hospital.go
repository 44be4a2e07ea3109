package model

// Hospital represents a row in the `hospitals` table. Hospitals are static
// reference data keyed by district; the service only reads them.
type Hospital struct {
	ID        uint64   // hospitals.id
	Name      string   // hospitals.name
	District  string   // hospitals.district
	Address   *string  // hospitals.address (nullable)
	Contact   *string  // hospitals.contact (nullable)
	Latitude  *float64 // hospitals.latitude (nullable)
	Longitude *float64 // hospitals.longitude (nullable)
}
