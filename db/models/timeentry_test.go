package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSnapshotUnmarshalObject(t *testing.T) {
	data := []byte(`{"project_id":"p1","project_name":"Website","hourly_rate":120,"client_id":"c1","client_first":"Ada"}`)

	var snap ProjectSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	assert.Equal(t, "p1", snap.ProjectID)
	assert.Equal(t, "Website", snap.ProjectName)
	require.NotNil(t, snap.HourlyRate)
	assert.Equal(t, 120.0, *snap.HourlyRate)
	assert.Equal(t, "Ada", snap.ClientFirst)
}

func TestProjectSnapshotUnmarshalStringEncoded(t *testing.T) {
	// legacy rows store the snapshot as a serialized blob
	data := []byte(`"{\"project_id\":\"p1\",\"project_name\":\"Website\",\"client_id\":\"c1\"}"`)

	var snap ProjectSnapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	assert.Equal(t, "p1", snap.ProjectID)
	assert.Equal(t, "Website", snap.ProjectName)
	assert.Nil(t, snap.HourlyRate)
}

func TestSnapshotProjectCapturesClientNames(t *testing.T) {
	hourly := 95.0
	project := &Project{ID: "p1", ClientID: "c1", ProjectName: "Website", Color: "#336699", HourlyRate: &hourly, Active: true}
	client := &Client{ID: "c1", ClientFirst: "Ada", ClientLast: "Lovelace"}

	snap := SnapshotProject(project, client)

	assert.Equal(t, "Website", snap.ProjectName)
	assert.Equal(t, "Ada", snap.ClientFirst)
	assert.Equal(t, "Lovelace", snap.ClientLast)
	require.NotNil(t, snap.HourlyRate)
	assert.Equal(t, 95.0, *snap.HourlyRate)
}

func TestSumSecondsTreatsRunningEntriesAsZero(t *testing.T) {
	finished := int64(3600)
	entries := []TimeEntry{
		{TimeLapsed: &finished},
		{TimeLapsed: nil}, // still running
		{TimeLapsed: &finished},
	}

	assert.Equal(t, int64(7200), SumSeconds(entries))
}
