package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fctx"
	"github.com/Southclaws/fault/ftag"
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/api/errorkinds"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// CreateRecord starts recording the current session. The session id of the new
// record is appended to RecordSessions.
func (c *Client) CreateRecord(title string, opts cortex.RecordOptions) (cortex.RecordResult, error) {
	token, sessionID, err := c.requireSession("create record")
	if err != nil {
		return cortex.RecordResult{}, err
	}

	result, err := commands.CreateRecord(token, sessionID, title, opts.Description, opts.SubjectName, opts.Tags).
		ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.addRecord(result)
	c.logger.Info().
		Str("record", result.Record.UUID).
		Str("session", result.SessionID).
		Msg("record created")

	return result, nil
}

// StopRecord stops the record of the current session.
func (c *Client) StopRecord() (cortex.RecordResult, error) {
	token, sessionID, err := c.requireSession("stop record")
	if err != nil {
		return cortex.RecordResult{}, err
	}

	result, err := commands.StopRecord(token, sessionID).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.stopRecord(result)
	c.logger.Info().
		Str("record", result.Record.UUID).
		Str("session", result.SessionID).
		Msg("record stopped")

	return result, nil
}

// UpdateRecord updates the description and tags of a record.
// An empty description or nil tags are left unchanged.
func (c *Client) UpdateRecord(recordID, description string, tags []string) (cortex.RecordData, error) {
	token, err := c.requireToken("update record")
	if err != nil {
		return cortex.RecordData{}, err
	}

	record, err := commands.UpdateRecord(token, recordID, description, tags).ExecuteWith(c.executor)
	if err != nil {
		return record, err
	}

	c.logger.Info().Str("record", record.UUID).Msg("record updated")

	return record, nil
}

// DeleteRecord deletes records. Records that could not be deleted are listed in
// the Failure member of the result.
func (c *Client) DeleteRecord(recordIDs ...string) (cortex.BatchResult, error) {
	token, err := c.requireToken("delete record")
	if err != nil {
		return cortex.BatchResult{}, err
	}

	result, err := commands.DeleteRecord(token, recordIDs).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logBatch("record deleted", result)

	return result, nil
}

// ExportRecord exports records to a folder. Records created by this client must
// be stopped first, otherwise no request is sent.
func (c *Client) ExportRecord(opts cortex.ExportOptions) (cortex.BatchResult, error) {
	token, err := c.requireToken("export record")
	if err != nil {
		return cortex.BatchResult{}, err
	}

	if err := validateExport(opts); err != nil {
		return cortex.BatchResult{}, err
	}

	if pending := c.unstoppedRecords(opts.RecordIDs); len(pending) > 0 {
		return cortex.BatchResult{}, fault.Wrap(errorkinds.ErrRecordNotStopped,
			fctx.With(context.Background(), "records", strings.Join(pending, ",")),
			ftag.With(ftag.InvalidArgument),
		)
	}

	result, err := commands.ExportRecord(token, opts.RecordIDs, opts.Folder, opts.StreamTypes, opts.Format).
		ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logBatch("record exported", result)

	return result, nil
}

// QueryRecords returns the records matching query, sorted by orderBy.
// Each orderBy entry maps a record field to "ASC" or "DESC".
func (c *Client) QueryRecords(query map[string]any, orderBy []map[string]string) (cortex.RecordQueryResult, error) {
	token, err := c.requireToken("query records")
	if err != nil {
		return cortex.RecordQueryResult{}, err
	}

	return commands.QueryRecords(token, query, orderBy).ExecuteWith(c.executor)
}

func validateExport(opts cortex.ExportOptions) error {
	var problem string

	switch {
	case len(opts.RecordIDs) == 0:
		problem = "no records to export"

	case opts.Folder == "":
		problem = "no export folder"

	case len(opts.StreamTypes) == 0:
		problem = "no stream types to export"

	case opts.Format != cortex.ExportEDF && opts.Format != cortex.ExportCSV:
		problem = fmt.Sprintf("unknown export format %q", opts.Format)
	}

	if problem == "" {
		return nil
	}

	return fault.Wrap(fmt.Errorf("%w: %s", errorkinds.ErrInvalidArgument, problem),
		fctx.With(context.Background(), "operation", "export record"),
		ftag.With(ftag.InvalidArgument),
	)
}

func (c *Client) logBatch(msg string, result cortex.BatchResult) {
	for _, s := range result.Success {
		c.logger.Info().
			Str("record", s.RecordID).
			Str("subject", s.SubjectName).
			Msg(msg)
	}

	for _, f := range result.Failure {
		c.logger.Warn().
			Str("record", f.RecordID).
			Str("subject", f.SubjectName).
			Int("code", f.Code).
			Msg(f.Message)
	}
}
