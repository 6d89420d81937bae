package cortex

// Session describes a Cortex session client.
//
// Operations that need an authorization token, a paired headset or an open
// session fail without contacting the service while those are unknown.
type Session interface {
	// Close closes the connection to the Cortex service.
	Close() error

	Access
	Headsets
	Sessions
	Records
	Subjects
	Profiles
	Training
	Streams
}

// Access describes the application access and authorization functions.
type Access interface {
	// RequestAccess asks the user to grant the application access.
	RequestAccess() (AccessData, error)

	// HasAccessRight reports whether the application has been granted access.
	HasAccessRight() (AccessData, error)

	// Authorize obtains and stores an authorization token.
	Authorize() (string, error)

	// Token returns the stored authorization token.
	Token() string
}

// Headsets describes the headset functions.
type Headsets interface {
	// QueryHeadsets returns the known headsets and pairs the first one.
	QueryHeadsets() ([]HeadsetData, error)

	// ControlHeadset connects, disconnects or refreshes the paired headset.
	ControlHeadset(action HeadsetAction) (ControlDeviceResult, error)

	// Headset returns the id and the last known status of the paired headset.
	Headset() (string, HeadsetStatus)
}

// Sessions describes the session functions.
type Sessions interface {
	CreateSession(status SessionStatus) (SessionData, error)
	QuerySessions() ([]SessionData, error)
	UpdateSession() (SessionData, error)
	SessionID() string
}

// Records describes the recording functions.
type Records interface {
	CreateRecord(title string, opts RecordOptions) (RecordResult, error)
	StopRecord() (RecordResult, error)
	UpdateRecord(recordID, description string, tags []string) (RecordData, error)
	DeleteRecord(recordIDs ...string) (BatchResult, error)
	ExportRecord(opts ExportOptions) (BatchResult, error)
	QueryRecords(query map[string]any, orderBy []map[string]string) (RecordQueryResult, error)

	// RecordSessions returns the session ids of the records created so far.
	RecordSessions() []string
}

// Subjects describes the subject functions.
type Subjects interface {
	CreateSubject(subjectName string) (SubjectData, error)
	DeleteSubject(subjects ...string) (BatchResult, error)
	GetDemographicAttributes() ([]DemographicAttribute, error)
}

// Profiles describes the training profile functions.
type Profiles interface {
	QueryProfile() ([]ProfileData, error)
	SetupProfile(profile string, status ProfileStatus) (SetupProfileResult, error)
	RenameProfile(profile, newName string) (SetupProfileResult, error)
	SaveProfile(profile string) (SetupProfileResult, error)
	UnloadProfile(profile string) (SetupProfileResult, error)
	GetCurrentProfile() (CurrentProfile, error)
}

// Training describes the training and mental command functions.
type Training interface {
	GetDetectionInfo(detection Detection) (DetectionInfo, error)
	Training(detection Detection, status TrainingControl, action string) (TrainingResult, error)
	GetTrainedSignatureActions(detection Detection, profile string) (RawResult, error)
	MentalCommandActiveAction(status, profile string, actions []string) (RawResult, error)
	MentalCommandGetSkillRating(profile, action string) (RawResult, error)
	MentalCommandTrainingThreshold(profile string) (RawResult, error)
	MentalCommandActionLevel(status, profile string, level *int) (RawResult, error)
}

// Streams describes the subscription and stream polling functions.
type Streams interface {
	Subscribe(streams ...StreamName) (SubscriptionResult, error)
	Unsubscribe(streams ...StreamName) (SubscriptionResult, error)

	// PollData returns a stream sample on every sixth call.
	PollData() (StreamSample, bool, error)

	// PollTrainingEvent returns a training event once it has been called eleven times.
	PollTrainingEvent() (TrainingEvent, bool, error)
}

// RecordOptions holds the optional attributes of a new record.
type RecordOptions struct {
	Description string
	SubjectName string
	Tags        []string
}

// ExportOptions describes an export of one or more records.
type ExportOptions struct {
	RecordIDs   []string
	Folder      string
	StreamTypes []string
	Format      ExportFormat
}
