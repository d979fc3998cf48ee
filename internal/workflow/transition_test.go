package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func TestBuildTransitionRejectsIllegalMove(t *testing.T) {
	_, err := BuildTransition(NotStarted, Request{Target: Deployed})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "workflow_status", verr.Field)
}

func TestBuildTransitionRejectsUnknownStatuses(t *testing.T) {
	_, err := BuildTransition(NotStarted, Request{Target: "bogus"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = BuildTransition("bogus", Request{Target: InProgress})
	require.ErrorAs(t, err, &verr)
}

// in_progress без исполнителя отклоняется локально, с указанием поля.
func TestBuildTransitionRequiresAssignee(t *testing.T) {
	_, err := BuildTransition(NotStarted, Request{Target: InProgress})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "assignee_id", verr.Field)

	tr, err := BuildTransition(NotStarted, Request{Target: InProgress, AssigneeID: int64p(7)})
	require.NoError(t, err)
	payload := tr.Payload()
	assert.Equal(t, int64(7), payload["assignee_id"])
}

// Свободный текст уезжает в статусо-специфичное поле.
func TestBuildTransitionFieldMapping(t *testing.T) {
	tests := []struct {
		name      string
		current   Status
		target    Status
		text      string
		wantField string
		omitted   []string
	}{
		{
			name: "stopped maps to stopped_reason", current: InProgress, target: Stopped,
			text: "нет данных от заказчика", wantField: "stopped_reason",
			omitted: []string{"comment", "deployment_mr_url"},
		},
		{
			name: "deployed maps to deployment_mr_url", current: Tested, target: Deployed,
			text: "https://gitlab.local/rules/-/merge_requests/42", wantField: "deployment_mr_url",
			omitted: []string{"comment", "stopped_reason"},
		},
		{
			name: "info_required maps to comment", current: NotStarted, target: InfoRequired,
			text: "какие источники логов?", wantField: "comment",
			omitted: []string{"stopped_reason", "deployment_mr_url"},
		},
		{
			name: "returned maps to comment", current: ReadyForTesting, target: Returned,
			text: "ложные срабатывания", wantField: "comment",
			omitted: []string{"stopped_reason", "deployment_mr_url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := BuildTransition(tt.current, Request{Target: tt.target, Comment: tt.text})
			require.NoError(t, err)

			payload := tr.Payload()
			assert.Equal(t, string(tt.target), payload["workflow_status"])
			assert.Equal(t, tt.text, payload[tt.wantField])
			for _, key := range tt.omitted {
				assert.NotContains(t, payload, key)
			}
		})
	}
}

// Пустой обязательный текст отклоняется с полем, специфичным статусу.
func TestBuildTransitionRequiredTextField(t *testing.T) {
	tests := []struct {
		current Status
		target  Status
		field   string
	}{
		{InProgress, Stopped, "stopped_reason"},
		{Tested, Deployed, "deployment_mr_url"},
		{NotStarted, InfoRequired, "comment"},
		{ReadyForTesting, Returned, "comment"},
	}

	for _, tt := range tests {
		_, err := BuildTransition(tt.current, Request{Target: tt.target, Comment: "   "})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "%s → %s", tt.current, tt.target)
		assert.Equal(t, tt.field, verr.Field)
	}
}

// Статусы без требований проходят без текста и исполнителя.
func TestBuildTransitionNoRequirements(t *testing.T) {
	tr, err := BuildTransition(InProgress, Request{Target: ReadyForTesting})
	require.NoError(t, err)
	payload := tr.Payload()
	assert.Equal(t, "ready_for_testing", payload["workflow_status"])
	assert.NotContains(t, payload, "comment")
}
