package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/jon4hz/artfolio/pkg/artfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContacts(t *testing.T) {
	var buf bytes.Buffer
	submitted := time.Date(2024, 3, 9, 14, 30, 0, 0, time.FixedZone("CET", 3600))

	err := Contacts(&buf, []artfolio.ContactMessage{
		{ID: "c1", Name: "Ada", Email: "ada@example.com", Message: "Hello, \"artist\"\nsecond line", SubmittedAt: submitted},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"id", "name", "email", "message", "submitted_at"},
		{"c1", "Ada", "ada@example.com", "Hello, \"artist\"\nsecond line", "2024-03-09T13:30:00Z"},
	}, records)
}

func TestSubscribers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Subscribers(&buf, []artfolio.Subscriber{{ID: "s1", Email: "a@b.c"}}))
	assert.Equal(t, "id,email,name,subscribed_at\ns1,a@b.c,,\n", buf.String())
}

func TestSubscribers_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Subscribers(&buf, nil))
	assert.Equal(t, "id,email,name,subscribed_at\n", buf.String())
}
