package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-assistant-go/internal/model"
)

func TestBuildMessages_EmptyHistory(t *testing.T) {
	msgs := BuildMessages("You are helpful.", nil, "Hi")

	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleSystem, msgs[0].Role)
	assert.Equal(t, "You are helpful.", msgs[0].Content)
	assert.Equal(t, model.RoleUser, msgs[1].Role)
	assert.Equal(t, "Hi", msgs[1].Content)
}

func TestBuildMessages_MapsHistoryInOrder(t *testing.T) {
	history := []model.Message{
		{SenderType: model.SenderUser, Content: "first question"},
		{SenderType: model.SenderAI, Content: "first answer"},
		{SenderType: model.SenderUser, Content: "second question"},
		{SenderType: model.SenderAI, Content: "second answer"},
	}

	msgs := BuildMessages("system prompt", history, "third question")

	// N 条历史 ⇒ N+2 条输出
	require.Len(t, msgs, len(history)+2)

	assert.Equal(t, model.RoleSystem, msgs[0].Role)
	assert.Equal(t, "system prompt", msgs[0].Content)

	expectedRoles := []string{model.RoleUser, model.RoleAssistant, model.RoleUser, model.RoleAssistant}
	for i, role := range expectedRoles {
		assert.Equal(t, role, msgs[i+1].Role)
		assert.Equal(t, history[i].Content, msgs[i+1].Content)
	}

	last := msgs[len(msgs)-1]
	assert.Equal(t, model.RoleUser, last.Role)
	assert.Equal(t, "third question", last.Content)
}

func TestBuildMessages_SystemPromptVerbatim(t *testing.T) {
	prompt := "  You are helpful.\nBe concise.  "
	msgs := BuildMessages(prompt, nil, "Hi")
	assert.Equal(t, prompt, msgs[0].Content)
}
