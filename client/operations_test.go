package client

import (
	"errors"
	"testing"

	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
)

// sessionClient returns a client that is authorized, with a connected headset and an open session.
func sessionClient(t *testing.T, m *mockCortex) *Client {
	t.Helper()

	c := newTestClient(t, m, nil)
	c.setToken("token-1")
	c.setHeadset("EPOCX-1", cortex.HeadsetStatusConnected)
	c.setSession("session-1")

	return c
}

func TestRecordHistoryIsAppendOnly(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("createRecord", `{"record":{"uuid":"record-1","title":"first"},"sessionId":"session-1"}`).
		result("createRecord", `{"record":{"uuid":"record-2","title":"second"},"sessionId":"session-2"}`).
		result("stopRecord", `{"record":{"uuid":"record-2"},"sessionId":"session-2"}`)

	c := sessionClient(t, m)

	if _, err := c.CreateRecord("first", cortex.RecordOptions{SubjectName: "subject"}); err != nil {
		t.Fatalf("create record: %v", err)
	}
	if req := m.lastRequest(); req.Params["subjectName"] != "subject" || req.Params["title"] != "first" {
		t.Fatalf("unexpected params %v", req.Params)
	}
	if _, ok := m.lastRequest().Params["description"]; ok {
		t.Fatalf("empty description was sent")
	}

	if _, err := c.CreateRecord("second", cortex.RecordOptions{}); err != nil {
		t.Fatalf("create record: %v", err)
	}
	if _, err := c.StopRecord(); err != nil {
		t.Fatalf("stop record: %v", err)
	}

	sessions := c.RecordSessions()
	if len(sessions) != 2 || sessions[0] != "session-1" || sessions[1] != "session-2" {
		t.Fatalf("unexpected record sessions %v", sessions)
	}

	sessions[0] = "changed"
	if c.RecordSessions()[0] != "session-1" {
		t.Fatalf("record sessions share memory with the caller")
	}
}

func TestExportRecordNeedsStoppedRecord(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("createRecord", `{"record":{"uuid":"record-1"},"sessionId":"session-1"}`).
		result("stopRecord", `{"record":{"uuid":"record-1"},"sessionId":"session-1"}`).
		result("exportRecord", `{"success":[{"recordId":"record-1"}],"failure":[]}`)

	c := sessionClient(t, m)

	if _, err := c.CreateRecord("r", cortex.RecordOptions{}); err != nil {
		t.Fatalf("create record: %v", err)
	}

	opts := cortex.ExportOptions{
		RecordIDs:   []string{"record-1"},
		Folder:      "/tmp/export",
		StreamTypes: []string{"EEG", "MOTION"},
		Format:      cortex.ExportCSV,
	}

	if _, err := c.ExportRecord(opts); !errors.Is(err, errorkinds.ErrRecordNotStopped) {
		t.Fatalf("expected record not stopped, got %v", err)
	}
	if got := m.methods(); len(got) != 1 {
		t.Fatalf("export was sent for a running record: %v", got)
	}

	if _, err := c.StopRecord(); err != nil {
		t.Fatalf("stop record: %v", err)
	}

	result, err := c.ExportRecord(opts)
	if err != nil {
		t.Fatalf("export record: %v", err)
	}
	if len(result.Success) != 1 || result.Success[0].RecordID != "record-1" {
		t.Fatalf("unexpected export result %+v", result)
	}

	req := m.lastRequest()
	if req.Params["format"] != "CSV" || req.Params["folder"] != "/tmp/export" {
		t.Fatalf("unexpected export params %v", req.Params)
	}
}

func TestExportRecordValidatesOptions(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t)
	c := sessionClient(t, m)

	bad := []cortex.ExportOptions{
		{Folder: "/tmp", StreamTypes: []string{"EEG"}, Format: cortex.ExportEDF},
		{RecordIDs: []string{"r"}, StreamTypes: []string{"EEG"}, Format: cortex.ExportEDF},
		{RecordIDs: []string{"r"}, Folder: "/tmp", Format: cortex.ExportEDF},
		{RecordIDs: []string{"r"}, Folder: "/tmp", StreamTypes: []string{"EEG"}, Format: "XLS"},
	}

	for i, opts := range bad {
		if _, err := c.ExportRecord(opts); !errors.Is(err, errorkinds.ErrInvalidArgument) {
			t.Fatalf("case %d: expected invalid argument, got %v", i, err)
		}
	}
	if got := m.methods(); len(got) != 0 {
		t.Fatalf("expected no requests, got %v", got)
	}
}

func TestDeleteRecordReportsFailures(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("deleteRecord", `{"success":[{"recordId":"record-1"}],"failure":[{"recordId":"record-2","code":-32102,"message":"Record not found."}]}`)

	c := sessionClient(t, m)

	result, err := c.DeleteRecord("record-1", "record-2")
	if err != nil {
		t.Fatalf("delete record: %v", err)
	}
	if len(result.Failure) != 1 || result.Failure[0].Code != -32102 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSetupProfileSavesImplicitly(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("setupProfile", `{"action":"load","name":"alpha","message":"Profile loaded."}`).
		result("setupProfile", `{"action":"save","name":"alpha","message":"Profile saved."}`)

	c := sessionClient(t, m)

	result, err := c.SetupProfile("  alpha ", cortex.ProfileLoad)
	if err != nil {
		t.Fatalf("setup profile: %v", err)
	}
	if result.Action != "load" {
		t.Fatalf("expected the load result, got %+v", result)
	}

	m.mu.Lock()
	requests := append([]mockRequest(nil), m.requests...)
	m.mu.Unlock()

	if len(requests) != 2 {
		t.Fatalf("expected load then save, got %d requests", len(requests))
	}
	if requests[0].Params["status"] != "load" || requests[0].Params["profile"] != "alpha" {
		t.Fatalf("unexpected load params %v", requests[0].Params)
	}
	if requests[1].Params["status"] != "save" || requests[1].Params["profile"] != "alpha" {
		t.Fatalf("unexpected save params %v", requests[1].Params)
	}
	if requests[1].Params["headset"] != "EPOCX-1" {
		t.Fatalf("save was not sent for the paired headset: %v", requests[1].Params)
	}
}

func TestUnloadProfileDoesNotSave(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("setupProfile", `{"action":"unload","name":"alpha","message":"Profile unloaded."}`)

	c := sessionClient(t, m)

	if _, err := c.UnloadProfile("alpha"); err != nil {
		t.Fatalf("unload profile: %v", err)
	}
	if got := m.methods(); len(got) != 1 {
		t.Fatalf("expected a single request, got %v", got)
	}
	if req := m.lastRequest(); req.Params["status"] != "unload" {
		t.Fatalf("unexpected params %v", req.Params)
	}
}

func TestRenameProfileSavesNewName(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("setupProfile", `{"action":"rename","name":"beta","message":"Profile renamed."}`).
		result("setupProfile", `{"action":"save","name":"beta","message":"Profile saved."}`)

	c := sessionClient(t, m)

	if _, err := c.SetupProfile("alpha", cortex.ProfileRename); !errors.Is(err, errorkinds.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	if _, err := c.RenameProfile("alpha", "beta"); err != nil {
		t.Fatalf("rename profile: %v", err)
	}

	m.mu.Lock()
	requests := append([]mockRequest(nil), m.requests...)
	m.mu.Unlock()

	if len(requests) != 2 {
		t.Fatalf("expected rename then save, got %d requests", len(requests))
	}
	if requests[0].Params["newProfileName"] != "beta" {
		t.Fatalf("unexpected rename params %v", requests[0].Params)
	}
	if requests[1].Params["profile"] != "beta" || requests[1].Params["status"] != "save" {
		t.Fatalf("unexpected save params %v", requests[1].Params)
	}
}

func TestTrainingAndMentalCommands(t *testing.T) {
	t.Parallel()

	m := newMockCortex(t).
		result("training", `{"action":"push","status":"start","message":"Set up training successfully."}`).
		result("mentalCommandActiveAction", `["neutral","push","pull"]`).
		result("mentalCommandActionLevel", `{"action":"set","message":"ok"}`).
		result("mentalCommandTrainingThreshold", `{"currentThreshold":0.5,"lastTrainingScore":0.7}`)

	c := sessionClient(t, m)

	result, err := c.Training(cortex.DetectionMentalCommand, cortex.TrainingStart, "push")
	if err != nil {
		t.Fatalf("training: %v", err)
	}
	if result.Status != "start" {
		t.Fatalf("unexpected result %+v", result)
	}
	if req := m.lastRequest(); req.Params["session"] != "session-1" || req.Params["detection"] != "mentalCommand" {
		t.Fatalf("unexpected training params %v", req.Params)
	}

	raw, err := c.MentalCommandActiveAction(MentalCommandGet, "alpha", nil)
	if err != nil {
		t.Fatalf("active action: %v", err)
	}
	var actions []string
	if err := raw.Decode(&actions); err != nil || len(actions) != 3 {
		t.Fatalf("unexpected actions %v (%v)", actions, err)
	}
	if req := m.lastRequest(); req.Params["session"] != "session-1" {
		t.Fatalf("session was not sent: %v", req.Params)
	}

	level := 4
	if _, err := c.MentalCommandActionLevel(MentalCommandGet, "alpha", &level); err != nil {
		t.Fatalf("action level: %v", err)
	}
	if _, ok := m.lastRequest().Params["level"]; ok {
		t.Fatalf("level was sent with get")
	}
	if _, err := c.MentalCommandActionLevel(MentalCommandSet, "alpha", &level); err != nil {
		t.Fatalf("action level: %v", err)
	}
	if got := m.lastRequest().Params["level"]; got != float64(4) {
		t.Fatalf("unexpected level %v", got)
	}

	raw, err = c.MentalCommandTrainingThreshold("alpha")
	if err != nil {
		t.Fatalf("training threshold: %v", err)
	}
	var threshold struct {
		LastTrainingScore float64 `json:"lastTrainingScore"`
	}
	if err := raw.Decode(&threshold); err != nil || threshold.LastTrainingScore != 0.7 {
		t.Fatalf("unexpected threshold %+v (%v)", threshold, err)
	}
}
