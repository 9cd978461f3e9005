package decode

import (
	"errors"
	"fmt"
	"time"

	"github.com/f1ledcircuit/replay-engine-go/pkg/model"
)

var errNotAnObject = errors.New("record is not a JSON object")

// wire schema: x,y,date,driver_number required, the rest carried along
func recordFromValue(v any) (model.TelemetryRecord, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return model.TelemetryRecord{}, errNotAnObject
	}
	x, err := floatField(obj, "x")
	if err != nil {
		return model.TelemetryRecord{}, err
	}
	y, err := floatField(obj, "y")
	if err != nil {
		return model.TelemetryRecord{}, err
	}
	driver, err := intField(obj, "driver_number")
	if err != nil {
		return model.TelemetryRecord{}, err
	}
	date, err := timeField(obj, "date")
	if err != nil {
		return model.TelemetryRecord{}, err
	}
	ret := model.TelemetryRecord{
		DriverNumber: driver,
		Date:         date,
		X:            x,
		Y:            y,
	}
	// optional fields
	if z, zErr := floatField(obj, "z"); zErr == nil {
		ret.Z = z
	}
	if sk, skErr := intField(obj, "session_key"); skErr == nil {
		ret.SessionKey = sk
	}
	if mk, mkErr := intField(obj, "meeting_key"); mkErr == nil {
		ret.MeetingKey = mk
	}
	return ret, nil
}

func floatField(obj map[string]any, key string) (float64, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("field %q is not a number (got %T)", key, raw)
	}
}

func intField(obj map[string]any, key string) (int, error) {
	raw, ok := obj[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	switch v := raw.(type) {
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("field %q is not an integer", key)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("field %q is not an integer (got %T)", key, raw)
	}
}

func timeField(obj map[string]any, key string) (time.Time, error) {
	raw, ok := obj[key]
	if !ok {
		return time.Time{}, fmt.Errorf("missing field %q", key)
	}
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("field %q is not a timestamp string", key)
	}
	// dates arrive as ISO-8601, with or without explicit offset
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
	} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("field %q: unparseable timestamp %q", key, s)
}
