package client

import (
	"testing"

	"github.com/neurodeck-org/cortex-native/api/cortex"
)

func TestSessionQueries(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("querySessions", `[{"id":"session-1","status":"opened","headset":{"id":"EPOCX-1"}}]`).
		result("updateSession", `{"id":"session-1","status":"activated","headset":{"id":"EPOCX-1"}}`)

	c := sessionClient(t, m)

	sessions, err := c.QuerySessions()
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Headset.ID != "EPOCX-1" {
		t.Fatalf("unexpected sessions %+v", sessions)
	}
	if req := m.lastRequest(); req.Params["cortexToken"] != "token-1" {
		t.Fatalf("unexpected params %v", req.Params)
	}

	session, err := c.UpdateSession()
	if err != nil {
		t.Fatalf("update session: %v", err)
	}
	if session.ID != "session-1" {
		t.Fatalf("unexpected session %+v", session)
	}
	if req := m.lastRequest(); req.Params["session"] != "session-1" || req.Params["status"] != "active" {
		t.Fatalf("unexpected params %v", req.Params)
	}
}

func TestRecordQueries(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("queryRecords", `{"records":[{"uuid":"record-1","title":"first"}],"count":1,"limit":0,"offset":0}`).
		result("updateRecord", `{"uuid":"record-1","title":"first","description":"calm"}`)

	c := sessionClient(t, m)

	records, err := c.QueryRecords(nil, nil)
	if err != nil {
		t.Fatalf("query records: %v", err)
	}
	if records.Count != 1 || records.Records[0].UUID != "record-1" {
		t.Fatalf("unexpected records %+v", records)
	}

	req := m.lastRequest()
	if q, ok := req.Params["query"].(map[string]any); !ok || len(q) != 0 {
		t.Fatalf("expected an empty query object, got %v", req.Params["query"])
	}
	if o, ok := req.Params["orderBy"].([]any); !ok || len(o) != 0 {
		t.Fatalf("expected an empty orderBy list, got %v", req.Params["orderBy"])
	}

	record, err := c.UpdateRecord("record-1", "calm", nil)
	if err != nil {
		t.Fatalf("update record: %v", err)
	}
	if record.Description != "calm" {
		t.Fatalf("unexpected record %+v", record)
	}

	req = m.lastRequest()
	if req.Params["record"] != "record-1" || req.Params["description"] != "calm" {
		t.Fatalf("unexpected params %v", req.Params)
	}
	if _, ok := req.Params["tags"]; ok {
		t.Fatalf("nil tags were sent")
	}
}

func TestSubjects(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("createSubject", `{"subjectName":"alice","sex":"F"}`).
		result("deleteSubject", `{"success":[{"subjectName":"alice"}],"failure":[{"subjectName":"bob","code":-32200,"message":"Subject not found."}]}`).
		result("getDemographicAttributes", `[{"name":"sex","value":["M","F","U"]}]`)

	c := sessionClient(t, m)

	subject, err := c.CreateSubject("alice")
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	if subject.SubjectName != "alice" {
		t.Fatalf("unexpected subject %+v", subject)
	}

	result, err := c.DeleteSubject("alice", "bob")
	if err != nil {
		t.Fatalf("delete subject: %v", err)
	}
	if len(result.Success) != 1 || len(result.Failure) != 1 || result.Failure[0].SubjectName != "bob" {
		t.Fatalf("unexpected result %+v", result)
	}
	if got := m.methods(); got[len(got)-1] != "deleteSubject" {
		t.Fatalf("unexpected method %v", got)
	}

	attributes, err := c.GetDemographicAttributes()
	if err != nil {
		t.Fatalf("demographic attributes: %v", err)
	}
	if len(attributes) != 1 || len(attributes[0].Value) != 3 {
		t.Fatalf("unexpected attributes %+v", attributes)
	}
}

func TestDetectionQueries(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("getDetectionInfo", `{"actions":["neutral","push"],"controls":["start","accept"],"events":["MC_Started"]}`).
		result("getTrainedSignatureActions", `{"totalTimesTraining":3,"trainedActions":[{"action":"push","times":3}]}`)

	c := newTestClient(t, m, nil)

	info, err := c.GetDetectionInfo(cortex.DetectionMentalCommand)
	if err != nil {
		t.Fatalf("detection info: %v", err)
	}
	if len(info.Actions) != 2 || info.Events[0] != "MC_Started" {
		t.Fatalf("unexpected detection info %+v", info)
	}
	if _, ok := m.lastRequest().Params["cortexToken"]; ok {
		t.Fatalf("token was sent with getDetectionInfo")
	}

	c.setToken("token-1")

	raw, err := c.GetTrainedSignatureActions(cortex.DetectionMentalCommand, "alpha")
	if err != nil {
		t.Fatalf("trained signature actions: %v", err)
	}

	var trained struct {
		TotalTimesTraining int `json:"totalTimesTraining"`
	}
	if err := raw.Decode(&trained); err != nil || trained.TotalTimesTraining != 3 {
		t.Fatalf("unexpected trained actions %+v (%v)", trained, err)
	}
	if req := m.lastRequest(); req.Params["profile"] != "alpha" || req.Params["detection"] != "mentalCommand" {
		t.Fatalf("unexpected params %v", req.Params)
	}
}
