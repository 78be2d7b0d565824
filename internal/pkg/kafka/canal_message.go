package kafka

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Canal event types
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

var (
	ErrTableNotWatched = errors.New("table not watched")
	ErrEmptyData       = errors.New("data is empty")
)

// CanalMessage flat JSON message canal publishes per binlog event
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data rows after the change
	Data []map[string]interface{} `json:"data"`
	// Old changed columns before an UPDATE
	Old []map[string]interface{} `json:"old"`
}

// ToCanalMessage decodes msg and checks it belongs to one of tables.
// DDL events and unwatched tables report ErrTableNotWatched.
func ToCanalMessage(msg *sarama.ConsumerMessage, tables ...string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, errors.Wrap(err, "unmarshal canal message")
	}

	if canalMsg.IsDDL || !slices.Contains(tables, canalMsg.Table) {
		return nil, errors.Wrapf(ErrTableNotWatched, "table %q", canalMsg.Table)
	}
	if len(canalMsg.Data) == 0 {
		return nil, ErrEmptyData
	}
	return &canalMsg, nil
}

// RowUint64 reads an unsigned column, canal renders every value as a string
func RowUint64(row map[string]interface{}, col string) (uint64, bool) {
	v, ok := row[col]
	if !ok || v == nil {
		return 0, false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		if t < 0 {
			return 0, false
		}
		return uint64(t), true
	case json.Number:
		s = t.String()
	default:
		s = fmt.Sprint(t)
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
