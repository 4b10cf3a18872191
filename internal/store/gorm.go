package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// Config selects the database backend.
type Config struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// DSN is the connection string: a file path for sqlite, a postgres URL
	// otherwise.
	DSN string `yaml:"dsn"`
}

// DefaultConfig returns a local sqlite database.
func DefaultConfig() Config {
	return Config{Driver: "sqlite", DSN: "recall.db"}
}

// Gorm is the database-backed Store.
type Gorm struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open connects to the configured database and migrates the schema.
func Open(cfg Config, log *zap.Logger) (*Gorm, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown database driver: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s database: %w", cfg.Driver, err)
	}

	if err := db.AutoMigrate(&topicRecord{}, &attemptRecord{}, &turnRecord{}, &noteUploadRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	log.Info("database ready", zap.String("driver", cfg.Driver))
	return &Gorm{db: db, log: log}, nil
}

func (g *Gorm) SeedTopics(ctx context.Context, topics []topic.Topic) error {
	now := time.Now().UTC()
	records := make([]*topicRecord, 0, len(topics))
	for _, t := range topics {
		rec, err := toTopicRecord(t, now)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}

	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "standard", "description",
				"expected_concepts", "common_misconceptions", "updated_at",
			}),
		}).
		Create(&records).Error
}

func (g *Gorm) ListTopics(ctx context.Context) ([]topic.Topic, error) {
	var records []topicRecord
	if err := g.db.WithContext(ctx).Order("standard, id").Find(&records).Error; err != nil {
		return nil, err
	}

	topics := make([]topic.Topic, 0, len(records))
	for i := range records {
		t, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		topics = append(topics, *t)
	}
	return topics, nil
}

func (g *Gorm) GetTopic(ctx context.Context, id string) (*topic.Topic, error) {
	var rec topicRecord
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ErrNotFound{Kind: "topic", ID: id}
		}
		return nil, err
	}
	return rec.toDomain()
}

func (g *Gorm) CreateAttempt(ctx context.Context, a *attempt.Attempt) error {
	rec, err := toAttemptRecord(a)
	if err != nil {
		return err
	}
	return g.db.WithContext(ctx).Create(rec).Error
}

func (g *Gorm) GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error) {
	var rec attemptRecord
	if err := g.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ErrNotFound{Kind: "attempt", ID: id}
		}
		return nil, err
	}
	return rec.toDomain()
}

func (g *Gorm) UpdateAttempt(ctx context.Context, a *attempt.Attempt) error {
	rec, err := toAttemptRecord(a)
	if err != nil {
		return err
	}
	res := g.db.WithContext(ctx).Model(&attemptRecord{}).Where("id = ?", a.ID).Updates(rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &ErrNotFound{Kind: "attempt", ID: a.ID}
	}
	return nil
}

func (g *Gorm) AppendTurn(ctx context.Context, a *attempt.Attempt, turn *attempt.Turn) error {
	rec, err := toAttemptRecord(a)
	if err != nil {
		return err
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored attemptRecord
		if err := tx.First(&stored, "id = ?", a.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ErrNotFound{Kind: "attempt", ID: a.ID}
			}
			return err
		}
		if stored.TurnCount != turn.Seq-1 {
			return &attempt.ErrSequence{AttemptID: a.ID, Want: stored.TurnCount + 1, Got: turn.Seq}
		}
		if err := tx.Create(toTurnRecord(turn)).Error; err != nil {
			return err
		}
		return tx.Save(rec).Error
	})
}

func (g *Gorm) ListTurns(ctx context.Context, attemptID string) ([]attempt.Turn, error) {
	var records []turnRecord
	err := g.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("seq").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	turns := make([]attempt.Turn, 0, len(records))
	for i := range records {
		turns = append(turns, records[i].toDomain())
	}
	return turns, nil
}

func (g *Gorm) SaveNoteUpload(ctx context.Context, upload *NoteUpload, a *attempt.Attempt) error {
	uploadRec, err := toNoteUploadRecord(upload)
	if err != nil {
		return err
	}
	attemptRec, err := toAttemptRecord(a)
	if err != nil {
		return err
	}

	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(uploadRec).Error; err != nil {
			return err
		}
		return tx.Save(attemptRec).Error
	})
}

func (g *Gorm) GetNoteUpload(ctx context.Context, attemptID string) (*NoteUpload, error) {
	var rec noteUploadRecord
	if err := g.db.WithContext(ctx).First(&rec, "attempt_id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ErrNotFound{Kind: "note upload for attempt", ID: attemptID}
		}
		return nil, err
	}
	return rec.toDomain()
}

func (g *Gorm) ListRecentAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error) {
	var records []attemptRecord
	err := g.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	attempts := make([]attempt.Attempt, 0, len(records))
	for i := range records {
		a, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, *a)
	}
	return attempts, nil
}

func (g *Gorm) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByStatus: make(map[attempt.Status]int64),
		ByMode:   make(map[attempt.Mode]int64),
	}

	var byStatus []struct {
		Status string
		N      int64
	}
	err := g.db.WithContext(ctx).Model(&attemptRecord{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[attempt.Status(row.Status)] = row.N
		stats.TotalAttempts += row.N
	}
	stats.MasteryCount = stats.ByStatus[attempt.StatusMastery]

	var byMode []struct {
		Mode string
		N    int64
	}
	err = g.db.WithContext(ctx).Model(&attemptRecord{}).
		Select("mode, count(*) as n").
		Group("mode").
		Scan(&byMode).Error
	if err != nil {
		return nil, err
	}
	for _, row := range byMode {
		stats.ByMode[attempt.Mode(row.Mode)] = row.N
	}

	return stats, nil
}
