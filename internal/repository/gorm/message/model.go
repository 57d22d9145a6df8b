package messagegorm

// MessageModel is the GORM persistence model for webhook messages.
// It maps directly to the "messages" table.
//
// message_id is the primary key, which gives us the unique constraint the
// idempotent insert relies on. Sender and timestamp carry secondary indexes
// for the list filters. Timestamps are stored as ISO-8601 UTC strings so
// range filtering and ordering reduce to plain lexicographic comparison.
type MessageModel struct {
	MessageID  string  `gorm:"column:message_id;primaryKey"`
	FromMSISDN string  `gorm:"column:from_msisdn;not null;index:idx_from_msisdn"`
	ToMSISDN   string  `gorm:"column:to_msisdn;not null"`
	TS         string  `gorm:"column:ts;not null;index:idx_ts"`
	Text       *string `gorm:"column:text;type:text"`
	ReceivedAt string  `gorm:"column:received_at;not null"`
}

// TableName overrides the default table name used by GORM.
func (MessageModel) TableName() string {
	return "messages"
}
