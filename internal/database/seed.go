package database

import (
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// DemoData is a small community used for local runs. Identifiers share one
// space across kinds, and tags and categories are present but not reportable.
type DemoData struct {
	Members    []models.Member
	Posts      []models.Post
	Comments   []models.Comment
	Tags       []models.Tag
	Categories []models.Category
}

// Demo returns the demo community. Demo members have no usable password.
func Demo() DemoData {
	return DemoData{
		Members: []models.Member{
			{ID: "u1", Email: "maria@demo.local", Password: "-", Name: "Maria", Role: "member"},
			{ID: "u2", Email: "jonas@demo.local", Password: "-", Name: "Jonas", Role: "member"},
			{ID: "u3", Email: "reviewer@demo.local", Password: "-", Name: "Rita", Role: "reviewer"},
		},
		Posts: []models.Post{
			{ID: "p23", AuthorID: "u2", Title: "Weekend market finds", Content: "Look what I found."},
			{ID: "p24", AuthorID: "u1", Title: "Bike repair tips", Content: "Start with the chain."},
		},
		Comments: []models.Comment{
			{ID: "c9", PostID: "p23", AuthorID: "u1", Content: "Nice haul!"},
		},
		Tags: []models.Tag{
			{ID: "t23"},
		},
		Categories: []models.Category{
			{ID: "cat9", Name: "Marketplace", Icon: "cart"},
		},
	}
}

// SeedDemo inserts the demo community. Rows that already exist are left alone.
func SeedDemo(db *gorm.DB) error {
	d := Demo()
	seeded := int64(0)

	err := db.Transaction(func(tx *gorm.DB) error {
		rows := []any{&d.Members, &d.Posts, &d.Comments, &d.Tags, &d.Categories}
		for _, r := range rows {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(r)
			if res.Error != nil {
				return res.Error
			}
			seeded += res.RowsAffected
		}
		return nil
	})
	if err != nil {
		return err
	}

	if seeded > 0 {
		slog.Info("seeded demo data", "new", seeded)
	}
	return nil
}
