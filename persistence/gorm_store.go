package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jinzhu/gorm"
	otgorm "github.com/smacker/opentracing-gorm"
)

type Document struct {
	Collection string    `gorm:"primary_key;size:64"`
	Body       string    `gorm:"type:longtext"`
	UpdateTime time.Time `gorm:"not null"`
}

type GormStore struct {
	DS *DataSourceManager
}

func NewGormStore(ds *DataSourceManager) (*GormStore, error) {
	db := ds.GormDB()
	otgorm.AddGormCallbacks(db)
	if err := db.AutoMigrate(&Document{}).Error; err != nil {
		return nil, err
	}
	return &GormStore{DS: ds}, nil
}

func (s *GormStore) db(ctx context.Context) *gorm.DB {
	return otgorm.SetSpanToGorm(ctx, s.DS.GormDB())
}

func (s *GormStore) Read(ctx context.Context, collection string, out interface{}) error {
	doc := Document{}
	if err := s.db(ctx).Where("collection = ?", collection).First(&doc).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal([]byte(doc.Body), out)
}

func (s *GormStore) Write(ctx context.Context, collection string, in interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	doc := Document{Collection: collection, Body: string(body), UpdateTime: time.Now()}
	return s.db(ctx).Save(&doc).Error
}
