package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadMalformed(t *testing.T) {
	_, err := ParsePayload("this is not json")
	assert.ErrorIs(t, err, ErrParse)

	_, err = ParsePayload(`{"response": "unterminated`)
	assert.ErrorIs(t, err, ErrParse)
}

func TestParsePayloadNoTasks(t *testing.T) {
	reply, err := ParsePayload(`{"response":"Your pantry has 3 items."}`)
	require.NoError(t, err)
	assert.Equal(t, "Your pantry has 3 items.", reply.Response)
	assert.Empty(t, reply.Tasks)

	reply, err = ParsePayload(`{"response":"Nothing to do.","tasks":[]}`)
	require.NoError(t, err)
	assert.Empty(t, reply.Tasks)
}

func TestParsePayloadUnknownActionSkipped(t *testing.T) {
	reply, err := ParsePayload(`{"response":"ok","tasks":[
		{"action":"rename","itemName":"flour"},
		{"action":"add","itemName":"eggs","itemCount":2}
	]}`)
	require.NoError(t, err)

	// The unrecognized action is omitted entirely: neither executed nor
	// recorded as a failure.
	require.Len(t, reply.Tasks, 1)
	assert.Equal(t, ActionAdd, reply.Tasks[0].Task.Action)
	assert.Equal(t, "eggs", reply.Tasks[0].Task.ItemName)
}

func TestParsePayloadMissingItemName(t *testing.T) {
	reply, err := ParsePayload(`{"response":"ok","tasks":[{"action":"add","itemName":"   "}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.True(t, reply.Tasks[0].Rejected)
	assert.False(t, reply.Tasks[0].Failure.Success)
}

func TestParsePayloadAddCountDefaults(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    float64
	}{
		{"missing count", `{"tasks":[{"action":"add","itemName":"eggs"}]}`, 1},
		{"non-numeric count", `{"tasks":[{"action":"add","itemName":"eggs","itemCount":"a dozen"}]}`, 1},
		{"numeric count", `{"tasks":[{"action":"add","itemName":"eggs","itemCount":12}]}`, 12},
		{"string numeric count", `{"tasks":[{"action":"add","itemName":"eggs","itemCount":"12"}]}`, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := ParsePayload(tt.payload)
			require.NoError(t, err)
			require.Len(t, reply.Tasks, 1)
			assert.False(t, reply.Tasks[0].Rejected)
			assert.Equal(t, tt.want, reply.Tasks[0].Task.ItemCount)
		})
	}
}

func TestParsePayloadUpdateRequiresFiniteCount(t *testing.T) {
	reply, err := ParsePayload(`{"tasks":[{"action":"update","itemName":"flour","itemCount":"lots"}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.True(t, reply.Tasks[0].Rejected)
	assert.Contains(t, reply.Tasks[0].Failure.Message, "Invalid quantity")

	reply, err = ParsePayload(`{"tasks":[{"action":"update","itemName":"flour"}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.True(t, reply.Tasks[0].Rejected)

	reply, err = ParsePayload(`{"tasks":[{"action":"update","itemName":"flour","itemCount":5,"updateAction":"increase"}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.False(t, reply.Tasks[0].Rejected)
	assert.Equal(t, 5.0, reply.Tasks[0].Task.ItemCount)
	assert.Equal(t, "increase", reply.Tasks[0].Task.UpdateAction)
}

func TestParsePayloadDeleteIgnoresCount(t *testing.T) {
	reply, err := ParsePayload(`{"tasks":[{"action":"delete","itemName":"rice","itemCount":"whatever"}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.False(t, reply.Tasks[0].Rejected)
	assert.Equal(t, ActionDelete, reply.Tasks[0].Task.Action)
	assert.Zero(t, reply.Tasks[0].Task.ItemCount)
}

func TestParsePayloadTrimsItemName(t *testing.T) {
	reply, err := ParsePayload(`{"tasks":[{"action":"add","itemName":"  Brown Rice  "}]}`)
	require.NoError(t, err)
	require.Len(t, reply.Tasks, 1)
	assert.Equal(t, "Brown Rice", reply.Tasks[0].Task.ItemName)
}
