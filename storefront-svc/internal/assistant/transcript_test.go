package assistant

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_Append(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	seq := 0
	tr := NewTranscript()
	tr.now = func() time.Time { return now }
	tr.newID = func() string { seq++; return "m" + strconv.Itoa(seq) }

	tr.AppendUser("hi")
	tr.AppendAssistant("hello", []Action{ViewCart{}})

	msgs := tr.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, Message{ID: "m1", Role: RoleUser, Content: "hi", CreatedAt: now}, msgs[0])
	assert.Equal(t, RoleAssistant, msgs[1].Role)
	assert.Equal(t, "m2", msgs[1].ID)
	assert.Equal(t, 2, tr.Len())

	msgs[0].Content = "changed"
	assert.Equal(t, "hi", tr.Messages()[0].Content)
}

func TestTranscript_LastSuggestion(t *testing.T) {
	tr := NewTranscript()
	assert.Empty(t, tr.LastSuggestion())

	tr.AppendAssistant("try this", []Action{Recommend{ItemID: "p1"}})
	tr.AppendAssistant("or this", []Action{Recommend{ItemID: "s1"}})
	tr.AppendAssistant("cart", []Action{ViewCart{}})
	tr.AppendUser("yes")

	assert.Equal(t, "s1", tr.LastSuggestion())
}
