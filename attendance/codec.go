package attendance

import (
	"encoding/json"
	"fmt"

	"github.com/warp/attendance-engine/generic"
)

// EncodeRequest serializes a record as its kind plus a JSON payload.
func EncodeRequest(r Request) (RequestKind, []byte, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s request: %w", r.Kind(), err)
	}
	return r.Kind(), payload, nil
}

// DecodeRequest is the inverse of EncodeRequest.
func DecodeRequest(kind RequestKind, payload []byte) (Request, error) {
	switch kind {
	case KindHoliday:
		return decode[HolidayRequest](payload)
	case KindSubHoliday:
		return decode[SubHolidayRequest](payload)
	case KindSubstitute:
		return decode[SubstituteHoliday](payload)
	case KindWorkOnHoliday:
		return decode[WorkOnHolidayRequest](payload)
	case KindOvertime:
		return decode[OvertimeRequest](payload)
	case KindDifference:
		return decode[DifferenceRequest](payload)
	case KindWorkTypeChange:
		return decode[WorkTypeChangeRequest](payload)
	case KindAttendance:
		return decode[AttendanceRecord](payload)
	}
	return nil, fmt.Errorf("%w: %q", generic.ErrUnknownRequestKind, kind)
}

func decode[T Request](payload []byte) (Request, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeTaggedRequest reads a payload carrying its own "kind" field.
func DecodeTaggedRequest(data []byte) (Request, error) {
	var tag struct {
		Kind RequestKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}
	return DecodeRequest(tag.Kind, data)
}
