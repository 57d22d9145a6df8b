package messagegorm

import (
	"context"
	"time"

	"github.com/rajansharma08/lyftr-webhook-api/internal/db"
	"github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is a GORM-backed implementation of the message.Repository
// interface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a message repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Init idempotently ensures the messages table and its indexes exist.
// AutoMigrate is a no-op when the schema is already in place, so concurrent
// or repeated calls are safe.
func (r *Repository) Init(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&MessageModel{})
}

// Exists reports whether a message with the given id has been committed.
func (r *Repository) Exists(ctx context.Context, messageID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Where("message_id = ?", messageID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// Insert persists a new message, assigning ReceivedAt exactly once.
//
// The primary key on message_id plus ON CONFLICT DO NOTHING makes the insert
// atomic under concurrent deliveries of the same id: exactly one caller wins
// the row, everyone else observes AlreadyExists, and the existing row is
// never touched.
func (r *Repository) Insert(ctx context.Context, m *message.Message) (message.InsertOutcome, error) {
	dbModel := fromDomain(m)
	dbModel.ReceivedAt = time.Now().UTC().Format(time.RFC3339)

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(dbModel)
	if res.Error != nil {
		var zero message.InsertOutcome
		return zero, res.Error
	}

	if res.RowsAffected == 0 {
		return message.AlreadyExists, nil
	}

	m.ReceivedAt = dbModel.ReceivedAt
	return message.Created, nil
}

// List returns a filtered, paginated slice of messages plus the total number
// of rows matching the filters. Ordering is (ts, message_id) ascending so
// pagination is deterministic even for equal timestamps.
func (r *Repository) List(ctx context.Context, f message.ListFilter) ([]*message.Message, int64, error) {
	var models []MessageModel
	var total int64

	query := r.db.WithContext(ctx).Model(&MessageModel{})

	// Optional predicates compose as parameterized clauses; user input never
	// reaches the query text itself.
	if f.From != "" {
		query = query.Where("from_msisdn = ?", f.From)
	}
	if f.Since != "" {
		query = query.Where("ts >= ?", f.Since)
	}
	if f.TextContains != "" {
		query = query.Where("text LIKE ?", "%"+f.TextContains+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("ts ASC, message_id ASC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	return toDomainMany(models), total, nil
}

// Stats aggregates over the whole table. An empty table yields zero counts,
// an empty sender list and nil timestamp bounds rather than an error.
func (r *Repository) Stats(ctx context.Context) (*message.Stats, error) {
	stats := &message.Stats{}

	if err := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Count(&stats.TotalMessages).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Distinct("from_msisdn").
		Count(&stats.SendersCount).Error; err != nil {
		return nil, err
	}

	// Top ten senders by message count. The secondary sender ordering keeps
	// ties deterministic across calls.
	var senders []struct {
		FromMSISDN string `gorm:"column:from_msisdn"`
		Count      int64  `gorm:"column:count"`
	}
	err := r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Select("from_msisdn, COUNT(*) AS count").
		Group("from_msisdn").
		Order("count DESC, from_msisdn ASC").
		Limit(10).
		Scan(&senders).Error
	if err != nil {
		return nil, err
	}

	stats.PerSender = make([]message.SenderCount, len(senders))
	for i, s := range senders {
		stats.PerSender[i] = message.SenderCount{From: s.FromMSISDN, Count: s.Count}
	}

	var bounds struct {
		FirstTS *string `gorm:"column:first_ts"`
		LastTS  *string `gorm:"column:last_ts"`
	}
	err = r.db.WithContext(ctx).
		Model(&MessageModel{}).
		Select("MIN(ts) AS first_ts, MAX(ts) AS last_ts").
		Scan(&bounds).Error
	if err != nil {
		return nil, err
	}
	stats.FirstTS = bounds.FirstTS
	stats.LastTS = bounds.LastTS

	return stats, nil
}

// Ready reports whether the storage is reachable and the schema exists.
// Used by the readiness probe only.
func (r *Repository) Ready(ctx context.Context) bool {
	sqlDB, err := r.db.DB()
	if err != nil {
		return false
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return false
	}

	return r.db.WithContext(ctx).Migrator().HasTable(&MessageModel{})
}

// compile-time interface check
var _ message.Repository = (*Repository)(nil)
