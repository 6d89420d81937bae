package client

import (
	"github.com/neurodeck-org/cortex-native/api/cortex"
	"github.com/neurodeck-org/cortex-native/client/internal/commands"
)

// CreateSubject creates a subject that can be attached to new records.
func (c *Client) CreateSubject(subjectName string) (cortex.SubjectData, error) {
	token, err := c.requireToken("create subject")
	if err != nil {
		return cortex.SubjectData{}, err
	}

	subject, err := commands.CreateSubject(token, subjectName).ExecuteWith(c.executor)
	if err != nil {
		return subject, err
	}

	c.logger.Info().Str("subject", subject.SubjectName).Msg("subject created")

	return subject, nil
}

// DeleteSubject deletes subjects by name. This cannot be undone.
func (c *Client) DeleteSubject(subjects ...string) (cortex.BatchResult, error) {
	token, err := c.requireToken("delete subject")
	if err != nil {
		return cortex.BatchResult{}, err
	}

	result, err := commands.DeleteSubject(token, subjects).ExecuteWith(c.executor)
	if err != nil {
		return result, err
	}

	c.logBatch("subject deleted", result)

	return result, nil
}

// GetDemographicAttributes returns the attributes a subject can be described with.
func (c *Client) GetDemographicAttributes() ([]cortex.DemographicAttribute, error) {
	token, err := c.requireToken("get demographic attributes")
	if err != nil {
		return nil, err
	}

	return commands.GetDemographicAttributes(token).ExecuteWith(c.executor)
}
