package content

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aivladyslavai/MarketingKreis-sub000/internal/domain"
)

func TestWriteCSV_BOMAndHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, nil))

	out := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])
	assert.Equal(t, "id,title,status,channel,format,due_at,scheduled_at,owner,tags", strings.TrimSpace(string(out[3:])))
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	item := domain.NewContentItem("item-1", `Q4, "Launch"`)
	item.Status = domain.StatusDraft

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*domain.ContentItem{item}, nil))

	assert.Contains(t, buf.String(), `"Q4, ""Launch"""`)
}

func TestWriteCSV_Fields(t *testing.T) {
	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	item := domain.NewContentItem("item-1", "Herbstkampagne")
	item.Status = domain.StatusScheduled
	item.Channel = "E-Mail"
	item.Format = "Newsletter"
	item.DueAt = &due
	item.OwnerID = "user-1"
	item.Tags = []string{"q4", "kampagne"}

	var buf bytes.Buffer
	resolve := func(id string) string {
		if id == "user-1" {
			return "Anna Beispiel"
		}
		return id
	}
	require.NoError(t, WriteCSV(&buf, []*domain.ContentItem{item}, resolve))

	lines := strings.Split(strings.TrimSpace(string(buf.Bytes()[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `item-1,Herbstkampagne,SCHEDULED,E-Mail,Newsletter,2026-09-15T12:00:00Z,,Anna Beispiel,"q4,kampagne"`, strings.TrimSpace(lines[1]))
}

func TestWriteCSV_EmptyDatesAndOwner(t *testing.T) {
	item := domain.NewContentItem("item-2", "Ohne Termine")

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []*domain.ContentItem{item}, nil))

	lines := strings.Split(strings.TrimSpace(string(buf.Bytes()[3:])), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "item-2,Ohne Termine,IDEA,,,,,,", strings.TrimSpace(lines[1]))
}
