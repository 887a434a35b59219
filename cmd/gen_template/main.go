package main

import (
	"fmt"
	"os"

	"github.com/espaceform/formation_portal/internal/app"
	"github.com/espaceform/formation_portal/internal/service"
)

// Утилита генерирует пустой шаблон импорта планнинга:
//
//	go run ./cmd/gen_template modele_planning.xlsx
func main() {
	path := "modele_planning.xlsx"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logger := app.NewLogger("development")
	defer logger.Sync()

	importer := service.NewImportService(nil, logger)

	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("❌ Ошибка создания файла: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := importer.WriteTemplate(f); err != nil {
		fmt.Printf("❌ Ошибка записи шаблона: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Шаблон сохранён: %s\n", path)
}
