package model

import "time"

// coordScale converts LED coordinates to integer keys.
// Float values are not usable as map keys directly, so we follow the
// convention of scaling by 1e6 and truncating.
const coordScale = 1_000_000

// LedCoordinate is one addressable point of the LED layout.
type LedCoordinate struct {
	X float64 `json:"x_led"`
	Y float64 `json:"y_led"`
}

// CoordKey is the map identity of a LedCoordinate.
type CoordKey struct {
	X int64
	Y int64
}

func (c LedCoordinate) Key() CoordKey {
	return CoordKey{
		X: int64(c.X * coordScale),
		Y: int64(c.Y * coordScale),
	}
}

// TelemetryRecord is one raw position sample as found on the wire.
// SessionKey, MeetingKey and Z are carried along but not evaluated.
type TelemetryRecord struct {
	DriverNumber int       `json:"driver_number"`
	Date         time.Time `json:"date"`
	X            float64   `json:"x"`
	Y            float64   `json:"y"`
	Z            float64   `json:"z"`
	SessionKey   int       `json:"session_key"`
	MeetingKey   int       `json:"meeting_key"`
}

// MappedEvent is a TelemetryRecord snapped onto the LED layout.
type MappedEvent struct {
	DriverNumber int
	Timestamp    time.Time
	Coord        LedCoordinate
}

// Color is an RGB display color for a driver.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// DriverInfo describes one entry of the static driver catalog.
type DriverInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Team   string `json:"team"`
	Color  Color  `json:"color"`
}
