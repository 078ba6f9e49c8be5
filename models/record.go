package models

// RecordType tags an entry of the unified record list with the kind of
// record it was projected from.
type RecordType string

const (
	// RecordTypeBiometric marks an entry backed by a BiometricRecord.
	RecordTypeBiometric RecordType = "biometric"

	// RecordTypeTouch marks an entry backed by a TouchRecord.
	RecordTypeTouch RecordType = "touch"
)

// BiometricRecord is a guardian-entered free-form record attached to a child
// profile, e.g. a fingerprint template or a voice sample.
type BiometricRecord struct {
	// ID is the server-assigned identifier, unique within biometric records.
	ID int64 `json:"id"`

	// ChildID identifies the child profile the record belongs to.
	ChildID string `json:"childId"`

	// DataType is a free-text label describing the payload
	// (e.g. "fingerprint", "voiceprint").
	DataType string `json:"dataType"`

	// Data is the raw captured payload. The server stores it opaquely.
	Data []byte `json:"data"`

	// Timestamp is the creation time in nanoseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the BiometricRecord model.
func (b BiometricRecord) TableName() string {
	return "biometric_records"
}

// TouchSample is one captured touch-sensor reading. Values are stored exactly
// as captured; the server applies no range validation or clamping.
type TouchSample struct {
	// X and Y are the touch coordinates, normalized to [0,1] by the capture
	// surface.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Force is the touch pressure as reported by the sensor.
	Force float64 `json:"force"`

	// RadiusX and RadiusY describe the contact ellipse.
	RadiusX float64 `json:"radiusX"`
	RadiusY float64 `json:"radiusY"`

	// RotationAngle is the contact ellipse rotation in sensor-defined units.
	RotationAngle float64 `json:"rotationAngle"`

	// Timestamp is the sample capture time in nanoseconds since the Unix
	// epoch.
	Timestamp int64 `json:"timestamp"`
}

// TouchRecord is one captured touch-sensing session: the whole ordered sample
// sequence is created and deleted as a unit.
type TouchRecord struct {
	// ID is the server-assigned identifier, unique within touch records.
	// The touch and biometric id spaces are independent.
	ID int64 `json:"id"`

	// ChildID identifies the child profile the record belongs to.
	ChildID string `json:"childId"`

	// RecordTimestamp is the creation time in nanoseconds since the Unix
	// epoch.
	RecordTimestamp int64 `json:"recordTimestamp"`

	// Samples is the ordered captured sequence. It may be empty; the store
	// accepts whatever the capture surface produced.
	Samples []TouchSample `json:"samples"`
}

// TableName returns the name of the database table
// associated with the TouchRecord model.
func (t TouchRecord) TableName() string {
	return "touch_records"
}

// RecordListEntry is a read-only projection of one record of either kind,
// used to present a single time-ordered list without materializing a
// separate store.
type RecordListEntry struct {
	// ID is the kind-local identifier of the underlying record.
	ID int64 `json:"id"`

	// RecordType tags which kind the entry was projected from.
	RecordType RecordType `json:"recordType"`

	// ChildID identifies the child profile the record belongs to.
	ChildID string `json:"childId"`

	// Timestamp is the underlying record's creation time in nanoseconds
	// since the Unix epoch.
	Timestamp int64 `json:"timestamp"`
}
