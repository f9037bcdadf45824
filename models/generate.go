package models

import (
	"fmt"
	"os"

	"gorm.io/gen"
	"gorm.io/gorm"
)

// GenerateQueryHelpers emits type-safe gorm/gen query builders for all
// entities into models/query. Run via GENERATE_MODELS=true; not part
// of the serving path.
func GenerateQueryHelpers(db *gorm.DB) {
	if err := db.Exec("SELECT 1").Error; err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:       "./models/query",
		Mode:          gen.WithDefaultQuery,
		FieldNullable: true,
	})

	g.UseDB(db)
	g.ApplyBasic(
		Project{},
		Participant{},
		Hacker{},
		Like{},
		TechTag{},
		DomainTag{},
		Week{},
		AttendanceRecord{},
		PitchEvent{},
		EventProject{},
		Newsletter{},
	)
	g.Execute()
}
