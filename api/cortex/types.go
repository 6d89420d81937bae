package cortex

import (
	"github.com/neurodeck-org/cortex-native/internal/serde"
)

// Credentials holds the application credentials issued by the vendor.
type Credentials struct {
	ClientID     string `json:"clientId" toml:"client_id" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" toml:"client_secret" yaml:"clientSecret"`
}

// HeadsetStatus describes the connection status of a headset.
type HeadsetStatus string

const (
	HeadsetStatusUnknown      HeadsetStatus = ""
	HeadsetStatusDiscovered   HeadsetStatus = "discovered"
	HeadsetStatusConnecting   HeadsetStatus = "connecting"
	HeadsetStatusConnected    HeadsetStatus = "connected"
	HeadsetStatusDisconnected HeadsetStatus = "disconnected"
)

// HeadsetAction is the command sent with controlDevice.
type HeadsetAction string

const (
	HeadsetConnect    HeadsetAction = "connect"
	HeadsetDisconnect HeadsetAction = "disconnect"
	HeadsetRefresh    HeadsetAction = "refresh"
)

// HeadsetData describes a headset known to the Cortex service.
type HeadsetData struct {
	ID          string        `json:"id"`
	Status      HeadsetStatus `json:"status"`
	ConnectedBy string        `json:"connectedBy,omitempty"`
	Firmware    string        `json:"firmware,omitempty"`
}

// AccessData is returned by requestAccess and hasAccessRight.
type AccessData struct {
	AccessGranted bool   `json:"accessGranted"`
	Message       string `json:"message"`
}

// ControlDeviceResult is returned by controlDevice.
type ControlDeviceResult struct {
	Command string `json:"command"`
	Message string `json:"message"`
}

// SessionStatus describes the status of a session.
type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionActive SessionStatus = "active"
	SessionClose  SessionStatus = "close"
)

// SessionData describes a session object.
type SessionData struct {
	ID        string        `json:"id"`
	Status    SessionStatus `json:"status"`
	Owner     string        `json:"owner,omitempty"`
	License   string        `json:"license,omitempty"`
	AppID     string        `json:"appId,omitempty"`
	Started   string        `json:"started,omitempty"`
	Stopped   string        `json:"stopped,omitempty"`
	Headset   HeadsetData   `json:"headset"`
	Streams   []string      `json:"streams,omitempty"`
	RecordIDs []string      `json:"recordIds,omitempty"`
	Recording bool          `json:"recording"`
}

// StreamInfo describes one successfully subscribed stream.
type StreamInfo struct {
	StreamName string   `json:"streamName"`
	Cols       []string `json:"cols"`
	SID        string   `json:"sid"`
}

// StreamFailure describes one stream that could not be (un)subscribed.
type StreamFailure struct {
	StreamName string `json:"streamName"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

// SubscriptionResult is returned by subscribe and unsubscribe.
type SubscriptionResult struct {
	Success []StreamInfo    `json:"success"`
	Failure []StreamFailure `json:"failure"`
}

// RecordData describes a record.
type RecordData struct {
	UUID          string   `json:"uuid"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	ApplicationID string   `json:"applicationId,omitempty"`
	LicenseID     string   `json:"licenseId,omitempty"`
	OwnerID       string   `json:"ownerId,omitempty"`
	StartDatetime string   `json:"startDatetime,omitempty"`
	EndDatetime   string   `json:"endDatetime,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// RecordResult is returned by createRecord and stopRecord.
type RecordResult struct {
	Record    RecordData `json:"record"`
	SessionID string     `json:"sessionId"`
}

// RecordQueryResult is returned by queryRecords.
type RecordQueryResult struct {
	Records []RecordData `json:"records"`
	Count   int          `json:"count"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

// BatchItem is one successful entry of a batch operation.
type BatchItem struct {
	RecordID    string `json:"recordId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	Message     string `json:"message,omitempty"`
}

// BatchFailure is one failed entry of a batch operation.
type BatchFailure struct {
	RecordID    string `json:"recordId,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	Code        int    `json:"code"`
	Message     string `json:"message"`
}

// BatchResult is returned by deleteRecord, exportRecord and deleteSubject.
type BatchResult struct {
	Success []BatchItem    `json:"success"`
	Failure []BatchFailure `json:"failure"`
}

// ExportFormat is the file format of an exported record.
type ExportFormat string

const (
	ExportEDF ExportFormat = "EDF"
	ExportCSV ExportFormat = "CSV"
)

// SubjectData describes a subject.
type SubjectData struct {
	SubjectName  string `json:"subjectName"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	Sex          string `json:"sex,omitempty"`
	CountryCode  string `json:"countryCode,omitempty"`
	State        string `json:"state,omitempty"`
	City         string `json:"city,omitempty"`
	ModifiedDate string `json:"modifiedDatetime,omitempty"`
}

// DemographicAttribute is one entry of getDemographicAttributes.
type DemographicAttribute struct {
	Name  string   `json:"name"`
	Value []string `json:"value"`
}

// ProfileStatus is the action requested from setupProfile.
type ProfileStatus string

const (
	ProfileCreate ProfileStatus = "create"
	ProfileLoad   ProfileStatus = "load"
	ProfileUnload ProfileStatus = "unload"
	ProfileSave   ProfileStatus = "save"
	ProfileRename ProfileStatus = "rename"
	ProfileDelete ProfileStatus = "delete"
)

// ProfileData describes a training profile.
type ProfileData struct {
	Name     string `json:"name"`
	UUID     string `json:"uuid,omitempty"`
	ReadOnly bool   `json:"readOnly"`
}

// SetupProfileResult is returned by setupProfile.
type SetupProfileResult struct {
	Action  string `json:"action"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// CurrentProfile is returned by getCurrentProfile. Name is empty when no profile is loaded.
type CurrentProfile struct {
	Name            string `json:"name"`
	LoadedByThisApp bool   `json:"loadedByThisApp"`
}

// Detection is a detection type handled by training.
type Detection string

const (
	DetectionMentalCommand    Detection = "mentalCommand"
	DetectionFacialExpression Detection = "facialExpression"
)

// TrainingControl is the status sent with training.
type TrainingControl string

const (
	TrainingStart  TrainingControl = "start"
	TrainingAccept TrainingControl = "accept"
	TrainingReject TrainingControl = "reject"
	TrainingReset  TrainingControl = "reset"
	TrainingErase  TrainingControl = "erase"
)

// TrainingResult is returned by training.
type TrainingResult struct {
	Action  string `json:"action"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DetectionInfo is returned by getDetectionInfo.
type DetectionInfo struct {
	Actions   []string `json:"actions"`
	Controls  []string `json:"controls"`
	Events    []string `json:"events"`
	Signature []string `json:"signature,omitempty"`
}

// RawResult is an undecoded result member, returned where the shape depends on
// the arguments of the call.
type RawResult []byte

// Decode decodes the raw result into v, which must be a pointer.
func (r RawResult) Decode(v any) error {
	return serde.UnmarshalJson([]byte(r), v)
}

// String returns the raw JSON text.
func (r RawResult) String() string {
	return string(r)
}
