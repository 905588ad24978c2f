package fetcher

// RawRecord is the single shape that crosses the provider boundary.
// Time is the provider's own representation (a year like "2021" or a
// calendar date like "2021-03-31"); Value is nil when the provider
// reported the observation as missing.
type RawRecord struct {
	Time  string
	Value *float64
}

// Float returns a pointer to v. Handy for building RawRecords.
func Float(v float64) *float64 {
	return &v
}

// Dataset holds one entity's raw records keyed by provider field name.
type Dataset struct {
	Entity string
	Fields map[string][]RawRecord
}

// NewDataset creates an empty Dataset for the entity.
func NewDataset(entity string) *Dataset {
	return &Dataset{
		Entity: entity,
		Fields: make(map[string][]RawRecord),
	}
}

// Add appends a record to the named field.
func (d *Dataset) Add(field, time string, value *float64) {
	d.Fields[field] = append(d.Fields[field], RawRecord{Time: time, Value: value})
}

// Field returns the records of a field, or a MalformedData error when the
// provider did not return it at all.
func (d *Dataset) Field(name string) ([]RawRecord, error) {
	recs, ok := d.Fields[name]
	if !ok || len(recs) == 0 {
		return nil, NewMalformedDataError(d.Entity, "field "+name+" missing from response")
	}
	return recs, nil
}

// Metadata is the best-effort descriptive information about a ticker.
type Metadata struct {
	Symbol    string
	LongName  string
	ShortName string
}

// Market data field names shared by all market providers.
const (
	FieldTotalRevenue = "totalRevenue"
	FieldGrossProfit  = "grossProfit"

	FieldOpen   = "open"
	FieldHigh   = "high"
	FieldLow    = "low"
	FieldClose  = "close"
	FieldVolume = "volume"
)
