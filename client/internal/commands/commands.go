package commands

import (
	"github.com/neurodeck-org/cortex-native/api/cortex"
)

// Cortex method names.
const (
	MethodRequestAccess                  = "requestAccess"
	MethodHasAccessRight                 = "hasAccessRight"
	MethodAuthorize                      = "authorize"
	MethodQueryHeadsets                  = "queryHeadsets"
	MethodControlDevice                  = "controlDevice"
	MethodCreateSession                  = "createSession"
	MethodQuerySessions                  = "querySessions"
	MethodUpdateSession                  = "updateSession"
	MethodSubscribe                      = "subscribe"
	MethodUnsubscribe                    = "unsubscribe"
	MethodCreateRecord                   = "createRecord"
	MethodStopRecord                     = "stopRecord"
	MethodUpdateRecord                   = "updateRecord"
	MethodDeleteRecord                   = "deleteRecord"
	MethodExportRecord                   = "exportRecord"
	MethodQueryRecords                   = "queryRecords"
	MethodCreateSubject                  = "createSubject"
	MethodDeleteSubject                  = "deleteSubject"
	MethodGetDemographicAttributes       = "getDemographicAttributes"
	MethodQueryProfile                   = "queryProfile"
	MethodSetupProfile                   = "setupProfile"
	MethodGetCurrentProfile              = "getCurrentProfile"
	MethodGetDetectionInfo               = "getDetectionInfo"
	MethodTraining                       = "training"
	MethodGetTrainedSignatureActions     = "getTrainedSignatureActions"
	MethodMentalCommandActiveAction      = "mentalCommandActiveAction"
	MethodMentalCommandGetSkillRating    = "mentalCommandGetSkillRating"
	MethodMentalCommandTrainingThreshold = "mentalCommandTrainingThreshold"
	MethodMentalCommandActionLevel       = "mentalCommandActionLevel"
)

// AuthorizeResult is the result of authorize.
type AuthorizeResult struct {
	CortexToken string `json:"cortexToken"`
}

// Access commands.
func RequestAccess(creds cortex.Credentials) *Command[cortex.AccessData] {
	return (&Command[cortex.AccessData]{method: MethodRequestAccess}).WithArguments(func(p Params) {
		p[ClientIDArgument] = creds.ClientID
		p[ClientSecretArgument] = creds.ClientSecret
	})
}
func HasAccessRight(creds cortex.Credentials) *Command[cortex.AccessData] {
	return (&Command[cortex.AccessData]{method: MethodHasAccessRight}).WithArguments(func(p Params) {
		p[ClientIDArgument] = creds.ClientID
		p[ClientSecretArgument] = creds.ClientSecret
	})
}
func Authorize(creds cortex.Credentials) *Command[AuthorizeResult] {
	return (&Command[AuthorizeResult]{method: MethodAuthorize}).WithArguments(func(p Params) {
		p[ClientIDArgument] = creds.ClientID
		p[ClientSecretArgument] = creds.ClientSecret
	})
}

// Headset commands.
func QueryHeadsets(headsetID string) *Command[[]cortex.HeadsetData] {
	return (&Command[[]cortex.HeadsetData]{method: MethodQueryHeadsets}).WithOptionalArgument(IDArgument, headsetID)
}
func ControlDevice(action cortex.HeadsetAction, headsetID string) *Command[cortex.ControlDeviceResult] {
	return (&Command[cortex.ControlDeviceResult]{method: MethodControlDevice}).WithArguments(func(p Params) {
		p[CommandArgument] = string(action)
		if headsetID != "" {
			p[HeadsetArgument] = headsetID
		}
	})
}

// Session commands.
func CreateSession(token, headsetID string, status cortex.SessionStatus) *Command[cortex.SessionData] {
	return (&Command[cortex.SessionData]{method: MethodCreateSession}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[HeadsetArgument] = headsetID
		p[StatusArgument] = string(status)
	})
}
func QuerySessions(token string) *Command[[]cortex.SessionData] {
	return (&Command[[]cortex.SessionData]{method: MethodQuerySessions}).WithArgument(TokenArgument, token)
}
func UpdateSession(token, sessionID string, status cortex.SessionStatus) *Command[cortex.SessionData] {
	return (&Command[cortex.SessionData]{method: MethodUpdateSession}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
		p[StatusArgument] = string(status)
	})
}

// Subscription commands.
func Subscribe(token, sessionID string, streams []string) *Command[cortex.SubscriptionResult] {
	return (&Command[cortex.SubscriptionResult]{method: MethodSubscribe}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
		p[StreamsArgument] = streams
	})
}
func Unsubscribe(token, sessionID string, streams []string) *Command[cortex.SubscriptionResult] {
	return (&Command[cortex.SubscriptionResult]{method: MethodUnsubscribe}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
		p[StreamsArgument] = streams
	})
}

// Record commands.
func CreateRecord(token, sessionID, title, description, subjectName string, tags []string) *Command[cortex.RecordResult] {
	return (&Command[cortex.RecordResult]{method: MethodCreateRecord}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
		p[TitleArgument] = title
	}).
		WithOptionalArgument(DescriptionArgument, description).
		WithOptionalArgument(SubjectNameArgument, subjectName).
		WithOptionalArgument(TagsArgument, tags)
}
func StopRecord(token, sessionID string) *Command[cortex.RecordResult] {
	return (&Command[cortex.RecordResult]{method: MethodStopRecord}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
	})
}
func UpdateRecord(token, recordID, description string, tags []string) *Command[cortex.RecordData] {
	return (&Command[cortex.RecordData]{method: MethodUpdateRecord}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[RecordArgument] = recordID
	}).
		WithOptionalArgument(DescriptionArgument, description).
		WithOptionalArgument(TagsArgument, tags)
}
func DeleteRecord(token string, recordIDs []string) *Command[cortex.BatchResult] {
	return (&Command[cortex.BatchResult]{method: MethodDeleteRecord}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[RecordsArgument] = recordIDs
	})
}
func ExportRecord(token string, recordIDs []string, folder string, streamTypes []string, format cortex.ExportFormat) *Command[cortex.BatchResult] {
	return (&Command[cortex.BatchResult]{method: MethodExportRecord}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[RecordIDsArgument] = recordIDs
		p[FolderArgument] = folder
		p[StreamTypesArgument] = streamTypes
		p[FormatArgument] = string(format)
	})
}
func QueryRecords(token string, query map[string]any, orderBy []map[string]string) *Command[cortex.RecordQueryResult] {
	return (&Command[cortex.RecordQueryResult]{method: MethodQueryRecords}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		if query == nil {
			query = map[string]any{}
		}
		p[QueryArgument] = query
		if orderBy == nil {
			orderBy = []map[string]string{}
		}
		p[OrderByArgument] = orderBy
	})
}

// Subject commands.
func CreateSubject(token, subjectName string) *Command[cortex.SubjectData] {
	return (&Command[cortex.SubjectData]{method: MethodCreateSubject}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SubjectNameArgument] = subjectName
	})
}
func DeleteSubject(token string, subjects []string) *Command[cortex.BatchResult] {
	return (&Command[cortex.BatchResult]{method: MethodDeleteSubject}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SubjectsArgument] = subjects
	})
}
func GetDemographicAttributes(token string) *Command[[]cortex.DemographicAttribute] {
	return (&Command[[]cortex.DemographicAttribute]{method: MethodGetDemographicAttributes}).WithArgument(TokenArgument, token)
}

// Profile commands.
func QueryProfile(token string) *Command[[]cortex.ProfileData] {
	return (&Command[[]cortex.ProfileData]{method: MethodQueryProfile}).WithArgument(TokenArgument, token)
}
func SetupProfile(token, headsetID, profile string, status cortex.ProfileStatus) *Command[cortex.SetupProfileResult] {
	return (&Command[cortex.SetupProfileResult]{method: MethodSetupProfile}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[StatusArgument] = string(status)
		p[ProfileArgument] = profile
	}).WithOptionalArgument(HeadsetArgument, headsetID)
}
func RenameProfile(token, headsetID, profile, newProfile string) *Command[cortex.SetupProfileResult] {
	return SetupProfile(token, headsetID, profile, cortex.ProfileRename).WithArgument(NewProfileArgument, newProfile)
}
func GetCurrentProfile(token, headsetID string) *Command[cortex.CurrentProfile] {
	return (&Command[cortex.CurrentProfile]{method: MethodGetCurrentProfile}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[HeadsetArgument] = headsetID
	})
}

// Training commands.
func GetDetectionInfo(detection cortex.Detection) *Command[cortex.DetectionInfo] {
	return (&Command[cortex.DetectionInfo]{method: MethodGetDetectionInfo}).WithArgument(DetectionArgument, string(detection))
}
func Training(token, sessionID string, detection cortex.Detection, status cortex.TrainingControl, action string) *Command[cortex.TrainingResult] {
	return (&Command[cortex.TrainingResult]{method: MethodTraining}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[SessionArgument] = sessionID
		p[DetectionArgument] = string(detection)
		p[StatusArgument] = string(status)
		p[ActionArgument] = action
	})
}
func GetTrainedSignatureActions(token string, detection cortex.Detection, profile string) *Command[cortex.RawResult] {
	return (&Command[cortex.RawResult]{method: MethodGetTrainedSignatureActions}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[DetectionArgument] = string(detection)
		p[ProfileArgument] = profile
	})
}

// Mental command commands. The session is sent when known, alongside the profile.
func MentalCommandActiveAction(token, status, profile, sessionID string, actions []string) *Command[cortex.RawResult] {
	return (&Command[cortex.RawResult]{method: MethodMentalCommandActiveAction}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[StatusArgument] = status
	}).
		WithOptionalArgument(ProfileArgument, profile).
		WithOptionalArgument(SessionArgument, sessionID).
		WithOptionalArgument(ActionsArgument, actions)
}
func MentalCommandGetSkillRating(token, profile, sessionID, action string) *Command[cortex.RawResult] {
	return (&Command[cortex.RawResult]{method: MethodMentalCommandGetSkillRating}).WithArgument(TokenArgument, token).
		WithOptionalArgument(ProfileArgument, profile).
		WithOptionalArgument(SessionArgument, sessionID).
		WithOptionalArgument(ActionArgument, action)
}
func MentalCommandTrainingThreshold(token, profile string) *Command[cortex.RawResult] {
	return (&Command[cortex.RawResult]{method: MethodMentalCommandTrainingThreshold}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[ProfileArgument] = profile
	})
}
func MentalCommandActionLevel(token, status, profile, sessionID string, level *int) *Command[cortex.RawResult] {
	cmd := (&Command[cortex.RawResult]{method: MethodMentalCommandActionLevel}).WithArguments(func(p Params) {
		p[TokenArgument] = token
		p[StatusArgument] = status
	}).
		WithOptionalArgument(ProfileArgument, profile).
		WithOptionalArgument(SessionArgument, sessionID)
	if level != nil {
		cmd.WithArgument(LevelArgument, *level)
	}

	return cmd
}
