package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"bookhive/database"
	"bookhive/internal/config"
	"bookhive/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedFile matches the catalog JSON layout:
//
//	{"books": [{"title": ..., "author": ..., "book_type": ..., "count": ...}, ...]}
type seedFile struct {
	Books []seedBook `json:"books"`
}

type seedBook struct {
	Title        string  `json:"title"`
	Author       string  `json:"author"`
	Genre        *string `json:"genre,omitempty"`
	Summary      string  `json:"summary"`
	BookType     string  `json:"book_type"`
	Count        int     `json:"count"`
	ThumbnailURL string  `json:"thumbnail_url"`
	PDFURL       *string `json:"pdf_url,omitempty"`
	VideoURL     *string `json:"video_url,omitempty"`
}

func main() {
	log.Println("Starting catalog import...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)
	log.Println("Connected to database")

	jsonFile := "catalog.json"
	if len(os.Args) > 1 {
		jsonFile = os.Args[1]
	}

	log.Printf("Reading catalog from %s...", jsonFile)
	seed, err := readSeedFile(jsonFile)
	if err != nil {
		log.Fatalf("Failed to read catalog file: %v", err)
	}
	log.Printf("Loaded %d books from JSON", len(seed.Books))

	imported, skipped, err := importBooks(db, seed.Books)
	if err != nil {
		log.Fatalf("Failed to import catalog: %v", err)
	}

	log.Printf("Imported %d books, skipped %d invalid entries", imported, skipped)
	log.Println("Catalog import completed")
}

func readSeedFile(filename string) (*seedFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var seed seedFile
	if err := json.NewDecoder(file).Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return &seed, nil
}

// importBooks upserts the catalog in one transaction, keyed on
// (title, author) so reruns refresh metadata instead of duplicating rows.
// Inventory counters on existing rows are left alone: the live borrow
// ledger owns them.
func importBooks(db *gorm.DB, books []seedBook) (imported, skipped int, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, in := range books {
			if in.Title == "" || in.Author == "" || in.ThumbnailURL == "" {
				log.Printf("Skipping entry with missing title/author/thumbnail: %q", in.Title)
				skipped++
				continue
			}
			switch in.BookType {
			case models.BookTypePhysical, models.BookTypeEbook, models.BookTypeBoth:
			default:
				log.Printf("Skipping %q: unknown book_type %q", in.Title, in.BookType)
				skipped++
				continue
			}

			book := models.Book{
				Title:        in.Title,
				Author:       in.Author,
				Genre:        in.Genre,
				Summary:      in.Summary,
				BookType:     in.BookType,
				Count:        in.Count,
				Available:    in.Count,
				ThumbnailURL: in.ThumbnailURL,
				PDFURL:       in.PDFURL,
				VideoURL:     in.VideoURL,
			}
			if !book.HasPhysical() {
				book.Count = 0
				book.Available = 0
			}

			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "title"}, {Name: "author"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"genre", "summary", "book_type", "thumbnail_url", "pdf_url", "video_url",
				}),
			}).Create(&book)
			if res.Error != nil {
				return fmt.Errorf("importing %q: %w", in.Title, res.Error)
			}
			imported++
		}
		return nil
	})
	return imported, skipped, err
}
