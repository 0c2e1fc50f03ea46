package dynamostream

import (
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Record is one KV table write surfaced on the DynamoDB stream.
type Record struct {
	EventName string // INSERT, MODIFY or REMOVE
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// IsInsert reports whether the record is a fresh item.
func (r *Record) IsInsert() bool {
	return r.EventName == "INSERT"
}

// HasPrefix reports whether the item key carries the given namespace
// prefix, e.g. "order:".
func (r *Record) HasPrefix(prefix string) bool {
	return strings.HasPrefix(r.Key, prefix)
}

// ID returns the key with its namespace prefix stripped.
func (r *Record) ID(prefix string) string {
	return strings.TrimPrefix(r.Key, prefix)
}

// ConvertRecord converts a DynamoDB stream record into a Record. REMOVE
// events carry no payload; only the key survives.
func ConvertRecord(record events.DynamoDBEventRecord) (*Record, error) {
	r := &Record{EventName: record.EventName}

	image := record.Change.NewImage
	if record.EventName == "REMOVE" {
		image = record.Change.Keys
	}
	if image == nil {
		return nil, fmt.Errorf("stream record %s has no image", record.EventID)
	}

	k, ok := image["k"]
	if !ok {
		return nil, fmt.Errorf("stream record %s is missing the partition key", record.EventID)
	}
	r.Key = k.String()

	if v, ok := image["v"]; ok {
		switch v.DataType() {
		case events.DataTypeBinary:
			r.Value = v.Binary()
		case events.DataTypeString:
			r.Value = []byte(v.String())
		}
	}

	if v, ok := image["updated_at"]; ok && v.DataType() == events.DataTypeString {
		t, err := time.Parse(time.RFC3339Nano, v.String())
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		r.UpdatedAt = t
	}

	return r, nil
}

// BatchConvert converts all records from a stream event. Returns
// successfully converted records and any errors encountered.
func BatchConvert(streamEvent events.DynamoDBEvent) ([]*Record, []error) {
	var records []*Record
	var errs []error

	for _, record := range streamEvent.Records {
		r, err := ConvertRecord(record)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %s: %w", record.EventID, err))
			continue
		}
		records = append(records, r)
	}

	return records, errs
}
