package domain

// LatLng is a WGS84 coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Polygon is an ordered ring of vertices. A polygon needs at least three
// points to be valid; closing the ring explicitly is not required.
type Polygon struct {
	Points []LatLng `json:"points"`
}

// IsValid reports whether the polygon has enough vertices to enclose area.
func (p *Polygon) IsValid() bool {
	return p != nil && len(p.Points) >= 3
}

// GeofenceVisibility controls who can see a geofence in listing surfaces.
type GeofenceVisibility string

const (
	GeofencePublic  GeofenceVisibility = "public"
	GeofencePrivate GeofenceVisibility = "private"
)

// Geofence is a named, reusable polygon area that signals can target.
type Geofence struct {
	ID         GeofenceID         `json:"id"`
	Name       string             `json:"name"`
	Polygon    Polygon            `json:"polygon"`
	Visibility GeofenceVisibility `json:"visibility"`
	OwnerID    UserID             `json:"ownerId"`
	CreatedAt  int64              `json:"createdAt"`
}
