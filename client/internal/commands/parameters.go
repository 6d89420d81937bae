package commands

// Argument is a parameter name of a Cortex method.
type Argument string

const (
	ClientIDArgument     Argument = "clientId"
	ClientSecretArgument Argument = "clientSecret"
	TokenArgument        Argument = "cortexToken"
	IDArgument           Argument = "id"
	CommandArgument      Argument = "command"
	HeadsetArgument      Argument = "headset"
	StatusArgument       Argument = "status"
	SessionArgument      Argument = "session"
	StreamsArgument      Argument = "streams"
	TitleArgument        Argument = "title"
	DescriptionArgument  Argument = "description"
	SubjectNameArgument  Argument = "subjectName"
	SubjectsArgument     Argument = "subjects"
	TagsArgument         Argument = "tags"
	RecordArgument       Argument = "record"
	RecordsArgument      Argument = "records"
	RecordIDsArgument    Argument = "recordIds"
	FolderArgument       Argument = "folder"
	StreamTypesArgument  Argument = "streamTypes"
	FormatArgument       Argument = "format"
	QueryArgument        Argument = "query"
	OrderByArgument      Argument = "orderBy"
	ProfileArgument      Argument = "profile"
	NewProfileArgument   Argument = "newProfileName"
	DetectionArgument    Argument = "detection"
	ActionArgument       Argument = "action"
	ActionsArgument      Argument = "actions"
	LevelArgument        Argument = "level"
)

func (a Argument) String() string {
	return string(a)
}
